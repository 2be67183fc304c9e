// Package config carrega o perfil de conversão (conta, mapeamento de colunas,
// saída e servidor) a partir de um arquivo YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"ofx-converter/internal/domain"

	"gopkg.in/yaml.v3"
)

// Valores padrão da conta, iguais aos do formulário original.
const (
	DefaultCurrency    = "BRL"
	DefaultBankID      = "00000000"
	DefaultAcctID      = "0000000000"
	DefaultAcctType    = domain.Checking
	DefaultCharset     = "utf-8"
	DefaultPreviewRows = 10
	DefaultPort        = "8083"
)

// Config é o perfil completo.
type Config struct {
	Account domain.AccountConfig `yaml:"account"`
	Columns domain.ColumnMapping `yaml:"columns"`
	Output  OutputConfig         `yaml:"output"`
	Server  ServerConfig         `yaml:"server"`
	// Formats lista os formatos de entrada habilitados (csv, xlsx, xls).
	Formats []string `yaml:"formats"`
	// LogLevel: debug, info, warn ou error.
	LogLevel string `yaml:"log_level"`
}

// OutputConfig controla a geração do documento.
type OutputConfig struct {
	// AutoGenerateID é ponteiro para distinguir "ausente" de false.
	AutoGenerateID *bool  `yaml:"auto_generate_id"`
	Charset        string `yaml:"charset"`
	PreviewRows    int    `yaml:"preview_rows"`
}

// ServerConfig controla o modo HTTP.
type ServerConfig struct {
	Port string `yaml:"port"`
	// JWTSecret habilita a exigência de token nas rotas /api/v1. Vazio usa
	// a variável de ambiente JWT_SECRET; se ambos vazios, as rotas ficam abertas.
	JWTSecret string `yaml:"jwt_secret"`
}

// Default devolve um perfil apenas com os valores padrão.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load lê o arquivo YAML. Um caminho vazio, ou um arquivo inexistente quando
// optional é true, devolve Default().
func Load(path string, optional bool) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("erro ao ler configuração %s: %w", path, err)
	}
	return Parse(data)
}

// Parse interpreta o conteúdo YAML e aplica os padrões.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("erro ao interpretar configuração: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Account.Currency == "" {
		cfg.Account.Currency = DefaultCurrency
	}
	if cfg.Account.BankID == "" {
		cfg.Account.BankID = DefaultBankID
	}
	if cfg.Account.AcctID == "" {
		cfg.Account.AcctID = DefaultAcctID
	}
	if cfg.Account.AcctType == "" {
		cfg.Account.AcctType = DefaultAcctType
	}
	cfg.Account.AcctType = domain.AccountType(strings.ToUpper(string(cfg.Account.AcctType)))
	if cfg.Output.AutoGenerateID == nil {
		on := true
		cfg.Output.AutoGenerateID = &on
	}
	if cfg.Output.Charset == "" {
		cfg.Output.Charset = DefaultCharset
	}
	if cfg.Output.PreviewRows <= 0 {
		cfg.Output.PreviewRows = DefaultPreviewRows
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.JWTSecret == "" {
		cfg.Server.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Conversion monta a configuração imutável de uma execução.
func (c *Config) Conversion() domain.ConversionConfig {
	return domain.ConversionConfig{
		Account:        c.Account,
		Columns:        c.Columns,
		AutoGenerateID: c.Output.AutoGenerateID != nil && *c.Output.AutoGenerateID,
		Charset:        c.Output.Charset,
	}
}
