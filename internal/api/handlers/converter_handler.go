package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"ofx-converter/internal/api/responses"
	"ofx-converter/internal/config"
	"ofx-converter/internal/core/converter"
	"ofx-converter/internal/core/ofx"
	"ofx-converter/internal/domain"

	"github.com/gin-gonic/gin"
)

// ConverterHandler lida com as requisições da API relacionadas à conversão de extratos.
type ConverterHandler struct {
	service  converter.Service
	defaults *config.Config
}

// NewConverterHandler cria um novo handler de conversão. defaults fornece os
// valores usados quando um campo do formulário não é enviado.
func NewConverterHandler(service converter.Service, defaults *config.Config) *ConverterHandler {
	if defaults == nil {
		defaults = config.Default()
	}
	return &ConverterHandler{
		service:  service,
		defaults: defaults,
	}
}

// ConversionReport é o corpo JSON de /convert/ofx/report.
type ConversionReport struct {
	FileName     string                  `json:"file_name"`
	Transactions int                     `json:"transactions"`
	RangeStart   string                  `json:"range_start"`
	RangeEnd     string                  `json:"range_end"`
	Skipped      []domain.SkipDiagnostic `json:"skipped"`
	Document     string                  `json:"document"`
}

// formValue devolve o campo do formulário ou o padrão quando ausente/vazio.
func formValue(c *gin.Context, key, fallback string) string {
	if v := strings.TrimSpace(c.PostForm(key)); v != "" {
		return v
	}
	return fallback
}

// conversionFromForm monta a configuração da execução a partir do formulário.
func (h *ConverterHandler) conversionFromForm(c *gin.Context) (domain.ConversionConfig, error) {
	cfg := h.defaults.Conversion()

	cfg.Account.Currency = formValue(c, "currency", cfg.Account.Currency)
	cfg.Account.BankID = formValue(c, "bankId", cfg.Account.BankID)
	cfg.Account.AcctID = formValue(c, "acctId", cfg.Account.AcctID)
	cfg.Account.AcctType = domain.AccountType(strings.ToUpper(formValue(c, "acctType", string(cfg.Account.AcctType))))

	cfg.Columns.Date = formValue(c, "dateColumn", cfg.Columns.Date)
	cfg.Columns.Amount = formValue(c, "amountColumn", cfg.Columns.Amount)
	cfg.Columns.Memo = formValue(c, "memoColumn", cfg.Columns.Memo)
	cfg.Columns.ID = formValue(c, "idColumn", cfg.Columns.ID)
	cfg.Columns.Type = formValue(c, "typeColumn", cfg.Columns.Type)
	cfg.Columns.DateFormat = formValue(c, "dateFormat", cfg.Columns.DateFormat)
	cfg.Charset = formValue(c, "charset", cfg.Charset)

	if raw := strings.TrimSpace(c.PostForm("autoGenerateId")); raw != "" {
		auto, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("valor inválido para autoGenerateId: %q", raw)
		}
		cfg.AutoGenerateID = auto
	}
	return cfg, nil
}

// openStatement abre o arquivo enviado no campo statementFile.
func openStatement(c *gin.Context) (multipart.File, string, bool) {
	header, err := c.FormFile("statementFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo de extrato (.csv, .xls, .xlsx) não encontrado ou inválido")
		return nil, "", false
	}
	file, err := header.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo de extrato")
		return nil, "", false
	}
	return file, header.Filename, true
}

// convert executa a conversão comum aos dois endpoints; false indica que a
// resposta de erro já foi enviada.
func (h *ConverterHandler) convert(c *gin.Context) (*domain.ConversionResult, bool) {
	cfg, err := h.conversionFromForm(c)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Parâmetros inválidos", err.Error())
		return nil, false
	}

	file, filename, ok := openStatement(c)
	if !ok {
		return nil, false
	}
	defer file.Close()

	result, err := h.service.ConvertFile(file, filename, cfg)
	if err != nil {
		writeConversionError(c, err)
		return nil, false
	}
	return result, true
}

// writeConversionError traduz os erros do serviço em status HTTP.
func writeConversionError(c *gin.Context, err error) {
	var cfgErr *domain.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		responses.Error(c, http.StatusBadRequest, "Configuração de conversão inválida", cfgErr.Messages()...)
	case errors.Is(err, domain.ErrUnsupportedFormat):
		responses.Error(c, http.StatusBadRequest, "Formato de arquivo não suportado", err.Error())
	case errors.Is(err, domain.ErrNoValidTransactions):
		responses.Error(c, http.StatusUnprocessableEntity, "Nenhuma transação válida encontrada. Verifique o mapeamento e o formato de data.", err.Error())
	default:
		responses.Error(c, http.StatusInternalServerError, "Erro ao processar o arquivo", err.Error())
	}
}

// HandleOFXConversion devolve o documento OFX como download.
func (h *ConverterHandler) HandleOFXConversion(c *gin.Context) {
	result, ok := h.convert(c)
	if !ok {
		return
	}
	contentType := "application/x-ofx; charset=utf-8"
	if canonical, _ := ofx.CanonicalCharset(h.effectiveCharset(c)); canonical == ofx.CharsetCP1252 {
		contentType = "application/x-ofx; charset=windows-1252"
	}
	responses.Attachment(c, result.FileName, contentType, result.Document, result.Count, len(result.Skipped))
}

// HandleOFXReport devolve o documento e os diagnósticos em JSON.
func (h *ConverterHandler) HandleOFXReport(c *gin.Context) {
	result, ok := h.convert(c)
	if !ok {
		return
	}
	skipped := result.Skipped
	if skipped == nil {
		skipped = []domain.SkipDiagnostic{}
	}
	report := ConversionReport{
		FileName:     result.FileName,
		Transactions: result.Count,
		RangeStart:   result.Statement.RangeStart,
		RangeEnd:     result.Statement.RangeEnd,
		Skipped:      skipped,
		Document:     string(result.Document),
	}
	msg := fmt.Sprintf("%d transação(ões) convertida(s)", result.Count)
	if n := len(result.Skipped); n > 0 {
		msg += fmt.Sprintf(", %d linha(s) ignorada(s)", n)
	}
	responses.Success(c, report, msg)
}

// HandlePreview devolve as primeiras linhas do arquivo e o mapeamento sugerido.
func (h *ConverterHandler) HandlePreview(c *gin.Context) {
	limit := h.defaults.Output.PreviewRows
	if raw := strings.TrimSpace(c.PostForm("rows")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			responses.Error(c, http.StatusBadRequest, "Parâmetros inválidos", fmt.Sprintf("valor inválido para rows: %q", raw))
			return
		}
		limit = n
	}

	file, filename, ok := openStatement(c)
	if !ok {
		return
	}
	defer file.Close()

	preview, err := h.service.PreviewFile(file, filename, limit)
	if err != nil {
		writeConversionError(c, err)
		return
	}
	responses.Success(c, preview, "Pré-visualização gerada")
}

func (h *ConverterHandler) effectiveCharset(c *gin.Context) string {
	return formValue(c, "charset", h.defaults.Output.Charset)
}
