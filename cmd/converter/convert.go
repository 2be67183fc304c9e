package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ofx-converter/internal/domain"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type convertOptions struct {
	output     string
	currency   string
	bankID     string
	acctID     string
	acctType   string
	dateColumn string
	amountCol  string
	memoColumn string
	idColumn   string
	typeColumn string
	dateFormat string
	autoID     bool
	charset    string
}

func newConvertCmd(root *rootOptions) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <arquivo>",
		Short: "Converte um extrato em documento OFX",
		Long: `Converte o extrato informado em OFX. Flags sobrescrevem os valores do
arquivo de configuração. Linhas com data ou valor inválidos são ignoradas e
listadas ao final.

Sem --output o arquivo é gravado como export_<conta>_<início>_<fim>.ofx no
diretório atual; use "-" para escrever na saída padrão.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.load()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			cfg := opts.apply(cmd.Flags(), a.cfg.Conversion())
			return runConvert(cmd, a, args[0], cfg, opts.output)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "arquivo de saída (\"-\" para stdout)")
	f.StringVar(&opts.currency, "currency", "", "moeda (CURDEF)")
	f.StringVar(&opts.bankID, "bank-id", "", "código do banco (BANKID)")
	f.StringVar(&opts.acctID, "acct-id", "", "número da conta (ACCTID)")
	f.StringVar(&opts.acctType, "acct-type", "", "tipo da conta: CHECKING, SAVINGS ou CREDITLINE")
	f.StringVar(&opts.dateColumn, "date-column", "", "coluna de data")
	f.StringVar(&opts.amountCol, "amount-column", "", "coluna de valor")
	f.StringVar(&opts.memoColumn, "memo-column", "", "coluna de descrição")
	f.StringVar(&opts.idColumn, "id-column", "", "coluna de identificador (opcional)")
	f.StringVar(&opts.typeColumn, "type-column", "", "coluna de tipo crédito/débito (opcional)")
	f.StringVar(&opts.dateFormat, "date-format", "", "formato da data, ex. %d/%m/%Y (opcional)")
	f.BoolVar(&opts.autoID, "auto-id", true, "gerar FITID aleatório quando não há coluna de ID")
	f.StringVar(&opts.charset, "charset", "", "codificação da saída: utf-8 ou cp1252")
	return cmd
}

// apply sobrescreve apenas o que foi informado na linha de comando.
func (o *convertOptions) apply(flags *pflag.FlagSet, cfg domain.ConversionConfig) domain.ConversionConfig {
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("currency", &cfg.Account.Currency, o.currency)
	set("bank-id", &cfg.Account.BankID, o.bankID)
	set("acct-id", &cfg.Account.AcctID, o.acctID)
	if flags.Changed("acct-type") {
		cfg.Account.AcctType = domain.AccountType(strings.ToUpper(o.acctType))
	}
	set("date-column", &cfg.Columns.Date, o.dateColumn)
	set("amount-column", &cfg.Columns.Amount, o.amountCol)
	set("memo-column", &cfg.Columns.Memo, o.memoColumn)
	set("id-column", &cfg.Columns.ID, o.idColumn)
	set("type-column", &cfg.Columns.Type, o.typeColumn)
	set("date-format", &cfg.Columns.DateFormat, o.dateFormat)
	set("charset", &cfg.Charset, o.charset)
	if flags.Changed("auto-id") {
		cfg.AutoGenerateID = o.autoID
	}
	return cfg
}

func runConvert(cmd *cobra.Command, a *app, path string, cfg domain.ConversionConfig, output string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("erro ao abrir %s: %w", path, err)
	}
	defer file.Close()

	result, err := a.service.ConvertFile(file, filepath.Base(path), cfg)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if output == "-" {
		if _, err := cmd.OutOrStdout().Write(result.Document); err != nil {
			return fmt.Errorf("erro ao escrever OFX: %w", err)
		}
	} else {
		if output == "" {
			output = result.FileName
		}
		if err := os.WriteFile(output, result.Document, 0o644); err != nil {
			return fmt.Errorf("erro ao gravar %s: %w", output, err)
		}
		fmt.Fprintf(stderr, "OFX gerado: %s (%d transações, %s a %s)\n",
			output, result.Count, result.Statement.RangeStart, result.Statement.RangeEnd)
	}

	printSkipped(stderr, result.Skipped)
	return nil
}

func printSkipped(w io.Writer, skipped []domain.SkipDiagnostic) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(w, "%d linha(s) ignorada(s) por data/valor inválidos:\n", len(skipped))
	for _, s := range skipped {
		fmt.Fprintf(w, "  linha %d\t%s\t%s\n", s.RowIndex, s.Reason, s.Memo)
	}
}
