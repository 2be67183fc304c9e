package converter

import (
	"regexp"
	"strings"
	"unicode"

	"ofx-converter/internal/domain"

	"github.com/schollz/closestmatch"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumericRegex = regexp.MustCompile(`[^A-Z0-9 ]+`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalizeText remove acentos, pontuação e caixa para comparar cabeçalhos.
func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, str)
	result = strings.ToUpper(result)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = whitespaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

type roleHint struct {
	role     string
	keywords []string
	// fuzzy habilita a busca aproximada; só para papéis obrigatórios
	fuzzy bool
}

// roleHints em ordem de atribuição; cada coluna é usada por no máximo um papel.
var roleHints = []roleHint{
	{role: "date", keywords: []string{"DATA", "DATE", "DT", "DATA LANCAMENTO", "DATA MOVIMENTO", "POSTED"}, fuzzy: true},
	{role: "amount", keywords: []string{"VALOR", "AMOUNT", "VLR", "MONTANTE", "QUANTIA", "VALUE"}, fuzzy: true},
	{role: "type", keywords: []string{"TIPO", "TYPE", "D C", "C D", "NATUREZA", "CREDITO DEBITO"}},
	{role: "id", keywords: []string{"ID", "FITID", "DOCUMENTO", "DOC", "NR DOC", "IDENTIFICADOR"}},
	{role: "memo", keywords: []string{"HISTORICO", "DESCRICAO", "MEMO", "DESCRIPTION", "LANCAMENTO", "DETALHE"}, fuzzy: true},
}

// SuggestMapping sugere papéis a partir dos nomes das colunas: primeiro igualdade
// normalizada, depois palavra-chave contida no cabeçalho, por fim busca aproximada.
// A sugestão nunca é aplicada sem confirmação do chamador.
func SuggestMapping(columns []string) domain.ColumnMapping {
	used := map[string]bool{}
	picked := map[string]string{}

	for _, hint := range roleHints {
		if col := pickColumn(columns, used, hint); col != "" {
			picked[hint.role] = col
			used[col] = true
		}
	}

	return domain.ColumnMapping{
		Date:   picked["date"],
		Amount: picked["amount"],
		Memo:   picked["memo"],
		ID:     picked["id"],
		Type:   picked["type"],
	}
}

func pickColumn(columns []string, used map[string]bool, hint roleHint) string {
	free := make([]string, 0, len(columns))
	byNorm := map[string]string{}
	for _, c := range columns {
		n := normalizeText(c)
		if used[c] || n == "" {
			continue
		}
		if _, ok := byNorm[n]; !ok {
			byNorm[n] = c
			free = append(free, n)
		}
	}
	if len(free) == 0 {
		return ""
	}

	for _, kw := range hint.keywords {
		if col, ok := byNorm[kw]; ok {
			return col
		}
	}
	for _, kw := range hint.keywords {
		for _, n := range free {
			if containsPhrase(n, kw) {
				return byNorm[n]
			}
		}
	}

	if !hint.fuzzy {
		return ""
	}
	cm := closestmatch.New(free, []int{2, 3})
	for _, kw := range hint.keywords {
		if len(kw) < 4 {
			continue
		}
		match := cm.Closest(kw)
		if match != "" && sharesStem(match, kw) {
			return byNorm[match]
		}
	}
	return ""
}

// containsPhrase verifica kw como palavra inteira (ou sequência de palavras) em s.
func containsPhrase(s, kw string) bool {
	return strings.Contains(" "+s+" ", " "+kw+" ")
}

// sharesStem evita aceitar um vizinho aproximado sem relação com a palavra-chave.
func sharesStem(candidate, kw string) bool {
	stem := kw[:3]
	for _, word := range strings.Fields(candidate) {
		if strings.HasPrefix(word, stem) {
			return true
		}
	}
	return false
}
