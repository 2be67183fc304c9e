package converter

import (
	"fmt"
	"io"
	"time"

	"ofx-converter/internal/core/ofx"
	"ofx-converter/internal/core/table"
	"ofx-converter/internal/domain"

	"go.uber.org/zap"
)

// DefaultPreviewRows é o número de linhas devolvidas pela pré-visualização.
const DefaultPreviewRows = 10

// Service define a interface para os serviços de conversão de extratos em OFX.
type Service interface {
	ConvertTable(t *domain.Table, cfg domain.ConversionConfig) (*domain.ConversionResult, error)
	ConvertFile(file io.Reader, filename string, cfg domain.ConversionConfig) (*domain.ConversionResult, error)
	PreviewFile(file io.Reader, filename string, limit int) (*domain.Preview, error)
}

type service struct {
	loader *table.Loader
	logger *zap.Logger
	now    func() time.Time
}

// Option ajusta dependências do serviço.
type Option func(*service)

// WithLoader troca o leitor de tabelas (por exemplo, para restringir formatos).
func WithLoader(l *table.Loader) Option {
	return func(s *service) { s.loader = l }
}

// WithLogger define o logger usado nos resumos de conversão.
func WithLogger(l *zap.Logger) Option {
	return func(s *service) { s.logger = l }
}

// WithClock fixa o relógio usado no DTSERVER.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService cria uma nova instância do serviço de conversão.
func NewService(opts ...Option) Service {
	s := &service{
		loader: table.NewLoader(),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConvertTable executa validação, normalização, montagem e serialização.
func (svc *service) ConvertTable(t *domain.Table, cfg domain.ConversionConfig) (*domain.ConversionResult, error) {
	if err := ValidateConfig(cfg, t.Columns); err != nil {
		return nil, err
	}

	txs, skipped := NewRecordBuilder(cfg).BuildAll(t)
	for _, s := range skipped {
		svc.logger.Debug("linha ignorada",
			zap.Int("row", s.RowIndex),
			zap.String("reason", string(s.Reason)),
			zap.String("memo", s.Memo))
	}

	doc, err := NewAssembler(svc.now).Assemble(txs, cfg.Account)
	if err != nil {
		svc.logger.Warn("nenhuma transação aceita",
			zap.Int("rows", len(t.Rows)),
			zap.Int("skipped", len(skipped)))
		return nil, err
	}

	out, err := ofx.Encode(ofx.Serialize(doc), cfg.Charset)
	if err != nil {
		return nil, err
	}

	svc.logger.Info("extrato convertido",
		zap.String("acct_id", doc.AcctID),
		zap.Int("transactions", len(doc.Transactions)),
		zap.Int("skipped", len(skipped)),
		zap.String("range_start", doc.RangeStart),
		zap.String("range_end", doc.RangeEnd))

	return &domain.ConversionResult{
		Document:  out,
		Statement: doc,
		Count:     len(doc.Transactions),
		Skipped:   skipped,
		FileName:  DownloadName(doc),
	}, nil
}

// ConvertFile carrega o arquivo e converte a tabela resultante.
func (svc *service) ConvertFile(file io.Reader, filename string, cfg domain.ConversionConfig) (*domain.ConversionResult, error) {
	t, err := svc.loader.Load(file, filename)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar %s: %w", filename, err)
	}
	svc.logger.Debug("arquivo carregado",
		zap.String("file", filename),
		zap.Int("columns", len(t.Columns)),
		zap.Int("rows", len(t.Rows)))
	return svc.ConvertTable(t, cfg)
}

// PreviewFile devolve as primeiras linhas, as colunas e um mapeamento sugerido.
func (svc *service) PreviewFile(file io.Reader, filename string, limit int) (*domain.Preview, error) {
	if limit <= 0 {
		limit = DefaultPreviewRows
	}
	t, err := svc.loader.Load(file, filename)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar %s: %w", filename, err)
	}

	head := t.Head(limit)
	rows := make([]map[string]any, 0, len(head.Rows))
	for _, r := range head.Rows {
		values := make(map[string]any, len(t.Columns))
		for _, c := range t.Columns {
			values[c] = r.Get(c)
		}
		rows = append(rows, values)
	}

	return &domain.Preview{
		Columns:   t.Columns,
		Rows:      rows,
		TotalRows: len(t.Rows),
		Suggested: SuggestMapping(t.Columns),
	}, nil
}

// DownloadName sugere o nome do arquivo: export_<conta>_<início>_<fim>.ofx.
func DownloadName(doc *domain.StatementDocument) string {
	return fmt.Sprintf("export_%s_%s_%s.ofx", doc.AcctID, doc.RangeStart, doc.RangeEnd)
}
