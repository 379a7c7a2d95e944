package export

import (
	"strings"

	"github.com/splitit/splitit/internal/money"
)

// Text renders the summary as the plain-text block people paste into chats.
func Text(s Summary) string {
	var b strings.Builder
	b.WriteString("🧾 Bill Split Summary\n\n")
	for _, line := range s.Lines {
		b.WriteString("• ")
		b.WriteString(line.Name)
		b.WriteString(": ")
		b.WriteString(money.Format(line.Amount, s.Currency.Symbol))
		b.WriteByte('\n')
	}
	b.WriteString("\n💰 Total: ")
	b.WriteString(money.Format(s.Total, s.Currency.Symbol))
	b.WriteString("\n\nSplit with SplitIt App! 📱")
	return b.String()
}
