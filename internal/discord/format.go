package discord

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatOdds renders a denominator as "1 in 1,000,000"
func formatOdds(denominator int64) string {
	if denominator < 1 {
		denominator = 1
	}
	return printer.Sprintf("1 in %d", denominator)
}

func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func formatLuck(luck float64) string {
	return printer.Sprintf("%.1f Luck", luck)
}

func formatMultiplier(m float64) string {
	return printer.Sprintf("x%.2f", m)
}

// formatDuration renders whole seconds as "1h 2m 3s", dropping leading zero units
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func mention(userID string) string {
	return "<@" + userID + ">"
}

// splitMessage breaks text into chunks that fit a single Discord message.
// Lines are kept whole unless one line alone exceeds the chunk size.
func splitMessage(text string, size int) []string {
	if len(text) <= MessageLimit {
		return []string{text}
	}
	var chunks []string
	var cur strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > size {
			if cur.Len() > 0 {
				chunks = append(chunks, cur.String())
				cur.Reset()
			}
			cut := size
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if cur.Len() > 0 && cur.Len()+len(line) > size {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
