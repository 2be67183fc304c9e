// Package ofx renders statement documents in the OFX 1.03 SGML grammar.
package ofx

import (
	"bufio"
	"bytes"
	"io"

	"ofx-converter/internal/domain"
)

// header is the fixed preamble, terminated by a blank line.
const header = "OFXHEADER:100\n" +
	"DATA:OFXSGML\n" +
	"VERSION:103\n" +
	"SECURITY:NONE\n" +
	"ENCODING:USASCII\n" +
	"CHARSET:1252\n" +
	"COMPRESSION:NONE\n" +
	"OLDFILEUID:NONE\n" +
	"NEWFILEUID:NONE\n" +
	"\n"

const statusOK = "<STATUS><CODE>0</CODE><SEVERITY>INFO</SEVERITY></STATUS>"

// Serialize returns the document text. Memo text is written verbatim.
func Serialize(doc *domain.StatementDocument) []byte {
	var buf bytes.Buffer
	// writes to a bytes.Buffer never fail
	_ = Write(&buf, doc)
	return buf.Bytes()
}

// Write streams the document to w.
// Leaf elements such as CURDEF, BANKID and the STMTTRN fields are left
// unclosed, as SGML OFX allows.
func Write(w io.Writer, doc *domain.StatementDocument) error {
	bw := bufio.NewWriter(w)
	line := func(indent int, s string) {
		for i := 0; i < indent; i++ {
			bw.WriteString("  ")
		}
		bw.WriteString(s)
		bw.WriteByte('\n')
	}

	bw.WriteString(header)
	line(0, "<OFX>")
	line(1, "<SIGNONMSGSRSV1>")
	line(2, "<SONRS>")
	line(3, statusOK)
	line(3, "<DTSERVER>"+doc.GeneratedAt+"</DTSERVER>")
	line(3, "<LANGUAGE>POR</LANGUAGE>")
	line(2, "</SONRS>")
	line(1, "</SIGNONMSGSRSV1>")
	line(1, "<BANKMSGSRSV1>")
	line(2, "<STMTTRNRS>")
	line(3, "<TRNUID>1</TRNUID>")
	line(3, statusOK)
	line(3, "<STMTRS>")
	line(4, "<CURDEF>"+doc.Currency)
	line(4, "<BANKACCTFROM>")
	line(5, "<BANKID>"+doc.BankID)
	line(5, "<ACCTID>"+doc.AcctID)
	line(5, "<ACCTTYPE>"+string(doc.AcctType))
	line(4, "</BANKACCTFROM>")
	line(4, "<BANKTRANLIST>")
	line(5, "<DTSTART>"+doc.RangeStart)
	line(5, "<DTEND>"+doc.RangeEnd)
	for _, tx := range doc.Transactions {
		line(5, "<STMTTRN>")
		line(6, "<TRNTYPE>"+string(tx.Type))
		line(6, "<DTPOSTED>"+tx.Posted)
		line(6, "<TRNAMT>"+tx.AmountText)
		line(6, "<FITID>"+tx.ID)
		line(6, "<MEMO>"+tx.Memo)
		line(5, "</STMTTRN>")
	}
	line(4, "</BANKTRANLIST>")
	line(3, "</STMTRS>")
	line(2, "</STMTTRNRS>")
	line(1, "</BANKMSGSRSV1>")
	line(0, "</OFX>")
	return bw.Flush()
}
