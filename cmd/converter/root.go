package main

import (
	"ofx-converter/internal/config"
	"ofx-converter/internal/core/converter"
	"ofx-converter/internal/core/table"
	"ofx-converter/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultConfigPath é opcional: se não existir, valem os padrões.
const defaultConfigPath = "converter.yaml"

// rootOptions guarda as flags persistentes.
type rootOptions struct {
	cfgFile string
	verbose bool
}

// app reúne as dependências montadas a partir das flags globais.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	service converter.Service
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "converter",
		Short: "Converte extratos CSV/XLSX/XLS em OFX 1.03",
		Long: `converter lê um extrato bancário em planilha ou CSV, normaliza datas,
valores e tipos de lançamento e gera um documento OFX 1.03 (SGML).

Exemplos:
  converter preview extrato.csv
  converter convert extrato.xlsx --date-column Data --amount-column Valor --memo-column Histórico
  converter serve --port 8083`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", defaultConfigPath, "arquivo de configuração YAML")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log detalhado (debug)")

	cmd.AddCommand(
		newConvertCmd(opts),
		newPreviewCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load lê a configuração e monta logger e serviço.
func (o *rootOptions) load() (*app, error) {
	cfg, err := config.Load(o.cfgFile, o.cfgFile == defaultConfigPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, o.verbose)
	if err != nil {
		return nil, err
	}

	formats := make([]table.Format, 0, len(cfg.Formats))
	for _, f := range cfg.Formats {
		formats = append(formats, table.Format(f))
	}
	svc := converter.NewService(
		converter.WithLoader(table.NewLoader(formats...)),
		converter.WithLogger(log),
	)
	return &app{cfg: cfg, log: log, service: svc}, nil
}
