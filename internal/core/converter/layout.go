package converter

import (
	"fmt"
	"strings"
)

// strftimeDirectives traduz diretivas no estilo strptime para o layout do pacote time.
// Dia, mês, hora, minuto e segundo usam as formas sem zero obrigatório para
// aceitar "5/1/2024" tanto quanto "05/01/2024".
var strftimeDirectives = map[byte]string{
	'd': "2",
	'm': "1",
	'Y': "2006",
	'y': "06",
	'H': "15",
	'I': "3",
	'M': "4",
	'S': "5",
	'f': "999999",
	'p': "PM",
	'b': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'j': "002",
	'z': "-0700",
	'Z': "MST",
	'%': "%",
}

// layoutTokens são trechos que o pacote time interpretaria dentro de um literal.
var layoutTokens = []string{"Jan", "Mon", "MST", "PM", "pm", "Z07", "-07", "_2", "__2", ".0", ".9", ",0", ",9"}

// ConvertDatePattern converte um padrão strftime ("%d/%m/%Y") para layout Go ("2/1/2006").
func ConvertDatePattern(pattern string) (string, error) {
	var b strings.Builder
	var literal strings.Builder
	directives := 0

	flushLiteral := func() error {
		lit := literal.String()
		literal.Reset()
		if strings.ContainsAny(lit, "0123456789") {
			return fmt.Errorf("padrão de data com dígitos literais não suportado: %q", lit)
		}
		for _, tok := range layoutTokens {
			if strings.Contains(lit, tok) {
				return fmt.Errorf("padrão de data com literal ambíguo %q", lit)
			}
		}
		b.WriteString(lit)
		return nil
	}

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			literal.WriteByte(pattern[i])
			continue
		}
		if i+1 >= len(pattern) {
			return "", fmt.Errorf("padrão de data termina com '%%': %q", pattern)
		}
		i++
		layout, ok := strftimeDirectives[pattern[i]]
		if !ok {
			return "", fmt.Errorf("diretiva de data não suportada: %%%c", pattern[i])
		}
		if err := flushLiteral(); err != nil {
			return "", err
		}
		b.WriteString(layout)
		directives++
	}
	if err := flushLiteral(); err != nil {
		return "", err
	}
	if directives == 0 {
		return "", fmt.Errorf("padrão de data sem diretivas (use %%d, %%m, %%Y...): %q", pattern)
	}
	return b.String(), nil
}
