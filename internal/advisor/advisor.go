// Package advisor answers portfolio questions with canned, rule-based
// replies written in Markdown.
package advisor

import (
	"fmt"
	"strings"

	"valu/internal/portfolio"
)

const (
	identityReply = "I am your dedicated Valu Financial Analyst. I monitor market trends to help you " +
		"manage your physical asset portfolio. Ask me about your total value, specific items, or selling strategies."
	genericSellReply = "To give you the best selling advice, I'd need to analyze the specific market conditions " +
		"for each item. Generally, look for assets with high demand and low supply."
	defaultReply = "That's an interesting point. As your portfolio manager, I suggest we keep an eye on market " +
		"trends for your collectibles. Is there a specific asset you'd like me to re-evaluate?"
)

// Greeting is shown before the first question.
const Greeting = "Hi! Ask me about your **total value**, a specific asset, or when to **sell**."

// Advisor answers questions about one portfolio.
type Advisor struct {
	portfolio *portfolio.Portfolio
}

// New creates an advisor. A nil portfolio is treated as empty.
func New(p *portfolio.Portfolio) *Advisor {
	if p == nil {
		p = &portfolio.Portfolio{}
	}
	return &Advisor{portfolio: p}
}

// Reply picks the first matching rule: portfolio totals, selling advice, a
// named asset or category, identity and help, then a default.
func (a *Advisor) Reply(question string) string {
	text := strings.ToLower(question)
	p := a.portfolio

	switch {
	case containsAny(text, "total", "worth", "portfolio"):
		return fmt.Sprintf("Your current portfolio consists of %d assets with a total market value of **%s**. "+
			"It's a solid foundation.", len(p.Assets), portfolio.FormatUSD(p.TotalValue()))

	case containsAny(text, "sell"):
		top, ok := p.MostValuable()
		if !ok {
			return genericSellReply
		}
		return fmt.Sprintf("Based on current market trends, your **%s** is valued highly at %s. "+
			"If you're looking for liquidity, this would be your strongest exit right now.",
			top.Title, portfolio.FormatUSD(top.CurrentValue))
	}

	if asset, ok := p.Find(text); ok {
		note := "It is currently below purchase price."
		if asset.Appreciated() {
			note = "It has appreciated nicely."
		}
		return fmt.Sprintf("**%s** is currently valued at %s. %s %s",
			asset.Title, portfolio.FormatUSD(asset.CurrentValue), note, asset.Insight)
	}

	if containsAny(text, "who are you", "help") {
		return identityReply
	}
	return defaultReply
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
