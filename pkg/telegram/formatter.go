package telegram

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"stock-alert-bot/internal/dto"
	"stock-alert-bot/internal/entity"
	"stock-alert-bot/pkg/utils"
)

const disclaimer = "⚠️ *Disclaimer:* This is for informational purposes only. Always conduct your own research before making trading decisions."

// FormatAlert formats one trading signal as a Markdown alert message.
func FormatAlert(signal entity.Signal, now time.Time) string {
	var b strings.Builder

	b.WriteString("🔔 *TRADING ALERT* 🔔\n\n")
	b.WriteString(fmt.Sprintf("*%s* (%s)\n\n", signal.Symbol, signal.Sector))
	b.WriteString(fmt.Sprintf("📰 *News:* %s\n\n", signal.Headline))
	b.WriteString(fmt.Sprintf("📊 *Sentiment:* %s\n", sentimentLabel(signal.Sentiment)))
	b.WriteString(fmt.Sprintf("⚡ *Impact:* %s\n", impactLabel(signal.Impact)))
	b.WriteString(fmt.Sprintf("👉 *Action:* %s\n", actionLabel(signal.Action)))
	b.WriteString(fmt.Sprintf("⏰ *Time:* %s\n", utils.PrettyDate(now)))

	if signal.Reason != "" {
		b.WriteString(fmt.Sprintf("💡 *Reason:* %s\n", signal.Reason))
	}

	if signal.Targets != nil {
		b.WriteString(formatTargets(*signal.Targets))
	}

	if signal.URL != "" {
		b.WriteString(fmt.Sprintf("\n🔗 [Read More](%s)\n", signal.URL))
	}

	return b.String()
}

// formatTargets renders the price-target block with percent deltas relative
// to the entry price.
func formatTargets(t entity.PriceTargets) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n💰 *Entry:* ₹%.2f\n", t.Entry))
	b.WriteString("🎯 *Targets:*\n")
	for i, target := range []float64{t.Target1, t.Target2, t.Target3} {
		b.WriteString(fmt.Sprintf("  T%d: ₹%.2f (%s)\n", i+1, target, pctDelta(t.Entry, target)))
	}
	b.WriteString(fmt.Sprintf("🛑 *Stop Loss:* ₹%.2f (%s)\n", t.StopLoss, pctDelta(t.Entry, t.StopLoss)))

	return b.String()
}

// FormatOutlook formats the daily market outlook message.
func FormatOutlook(o dto.MarketOutlook) string {
	var b strings.Builder

	b.WriteString("🔮 *DAILY MARKET OUTLOOK* 🔮\n\n")
	b.WriteString(fmt.Sprintf("📅 *Date:* %s\n\n", o.Date.Format("02-Jan-2006")))

	if len(o.Indices) > 0 {
		b.WriteString("📈 *Index Performance:*\n")
		for _, index := range firstN(o.Indices, 3) {
			b.WriteString(fmt.Sprintf("• %s: %s %s\n", index.Name, signedPct(index.ChangePercent), changeIcon(index.ChangePercent)))
		}
		b.WriteString("\n")
	}

	if len(o.Sectors) > 0 {
		b.WriteString("📊 *Sector Performance:*\n*Top Performing Sectors:*\n")
		for _, sector := range firstN(o.Sectors, 3) {
			b.WriteString(fmt.Sprintf("• %s: %s %s\n", sector.Name, signedPct(sector.ChangePercent), changeIcon(sector.ChangePercent)))
		}
		b.WriteString("\n*Underperforming Sectors:*\n")
		for _, sector := range lastN(o.Sectors, 3) {
			b.WriteString(fmt.Sprintf("• %s: %.2f%% %s\n", sector.Name, sector.ChangePercent, changeIcon(sector.ChangePercent)))
		}
		b.WriteString("\n")
	}

	if o.Sentiment != nil {
		b.WriteString(fmt.Sprintf("🧭 *Market Sentiment:* %s\n", o.Sentiment.OverallSentiment))
		b.WriteString(fmt.Sprintf("🔍 *Market Outlook:* %s\n\n", o.Sentiment.Outlook))
	}

	if len(o.Activities) > 0 {
		b.WriteString(formatActivitySummary(o.Activities, true))
	}

	b.WriteString(disclaimer)
	return b.String()
}

// FormatEODSummary formats the end-of-day market summary message.
func FormatEODSummary(s dto.EODSummary) string {
	var b strings.Builder

	b.WriteString("📊 *END OF DAY SUMMARY* 📊\n\n")
	b.WriteString(fmt.Sprintf("📅 *Date:* %s\n\n", s.Date.Format("02-Jan-2006")))

	if len(s.Indices) > 0 {
		b.WriteString("📈 *Index Performance:*\n")
		for _, index := range firstN(s.Indices, 5) {
			b.WriteString(fmt.Sprintf("• %s: %.2f (%s) %s\n", index.Name, index.Close, signedPct(index.ChangePercent), changeIcon(index.ChangePercent)))
		}
		b.WriteString("\n")
	}

	if len(s.Gainers) > 0 {
		b.WriteString("🟢 *Top Gainers:*\n")
		for _, g := range firstN(s.Gainers, 5) {
			b.WriteString(fmt.Sprintf("• %s: ₹%.2f (+%.2f%%)\n", g.Symbol, g.LastPrice, g.ChangePercent))
		}
		b.WriteString("\n")
	}

	if len(s.Losers) > 0 {
		b.WriteString("🔴 *Top Losers:*\n")
		for _, l := range firstN(s.Losers, 5) {
			b.WriteString(fmt.Sprintf("• %s: ₹%.2f (%.2f%%)\n", l.Symbol, l.LastPrice, l.ChangePercent))
		}
		b.WriteString("\n")
	}

	if len(s.Sectors) > 0 {
		b.WriteString("🔍 *Sector Performance:*\n")
		for _, sector := range firstN(s.Sectors, 3) {
			b.WriteString(fmt.Sprintf("• %s: %s %s\n", sector.Name, signedPct(sector.ChangePercent), changeIcon(sector.ChangePercent)))
		}
		for _, sector := range lastN(s.Sectors, 3) {
			b.WriteString(fmt.Sprintf("• %s: %.2f%% %s\n", sector.Name, sector.ChangePercent, changeIcon(sector.ChangePercent)))
		}
		b.WriteString("\n")
	}

	if len(s.Activities) > 0 {
		b.WriteString(formatActivitySummary(s.Activities, false))
	}

	if s.Breadth != nil {
		b.WriteString("📊 *Market Breadth:*\n")
		b.WriteString(fmt.Sprintf("• Advancing Stocks: %d\n", s.Breadth.Advancers))
		b.WriteString(fmt.Sprintf("• Declining Stocks: %d\n", s.Breadth.Decliners))
		b.WriteString(fmt.Sprintf("• Unchanged: %d\n\n", s.Breadth.Unchanged))
	}

	if s.Volume != nil {
		b.WriteString("💹 *Market Volume:*\n")
		b.WriteString(fmt.Sprintf("• Total Volume: ₹%.2f Cr\n", s.Volume.TotalVolume/1e7))
		ratio := 1.0
		if s.Volume.AverageVolume > 0 {
			ratio = s.Volume.TotalVolume / s.Volume.AverageVolume
		}
		switch {
		case ratio > 1.2:
			b.WriteString(fmt.Sprintf("• Volume: %.2fx higher than average 📈\n\n", ratio))
		case ratio < 0.8:
			b.WriteString(fmt.Sprintf("• Volume: %.2fx lower than average 📉\n\n", ratio))
		default:
			b.WriteString("• Volume: Near average ↔️\n\n")
		}
	}

	b.WriteString("🔮 *Next Day Outlook:*\n")
	b.WriteString(nextDayOutlook(s))
	b.WriteString("\n")
	b.WriteString(disclaimer)
	return b.String()
}

func nextDayOutlook(s dto.EODSummary) string {
	if s.Sentiment != nil {
		switch s.Sentiment.OverallSentiment {
		case "Positive":
			return "• Market sentiment is positive, suggesting potential continuation of upward momentum.\n"
		case "Negative":
			return "• Market sentiment is negative, suggesting caution for tomorrow's session.\n"
		default:
			return "• Market sentiment is mixed, suggesting a range-bound session tomorrow.\n"
		}
	}
	if len(s.Indices) > 0 && s.Indices[0].ChangePercent > 0 {
		return "• Markets closed positive today. Watch for follow-through buying tomorrow.\n"
	}
	if len(s.Indices) > 0 && s.Indices[0].ChangePercent < 0 {
		return "• Markets closed negative today. Watch for potential support levels tomorrow.\n"
	}
	return "• Markets were indecisive today. Look for breakout signals tomorrow.\n"
}

// formatActivitySummary renders the institutional activity block. The top
// entries by absolute net position are listed when detail is requested.
func formatActivitySummary(activities []entity.InstitutionalActivity, detail bool) string {
	var netBuy, netSell int
	for _, a := range activities {
		if a.NetPosition > 0 {
			netBuy++
		} else if a.NetPosition < 0 {
			netSell++
		}
	}

	var b strings.Builder
	b.WriteString("🐋 *Institutional Activity:*\n")
	b.WriteString(fmt.Sprintf("• Net Buying: %d stocks\n", netBuy))
	b.WriteString(fmt.Sprintf("• Net Selling: %d stocks\n\n", netSell))

	if detail {
		sorted := make([]entity.InstitutionalActivity, len(activities))
		copy(sorted, activities)
		sort.SliceStable(sorted, func(i, j int) bool {
			return absInt64(sorted[i].NetPosition) > absInt64(sorted[j].NetPosition)
		})

		b.WriteString("*Notable Institutional Activity:*\n")
		for _, a := range firstN(sorted, 3) {
			direction := "buying"
			icon := "🟢"
			if a.NetPosition < 0 {
				direction = "selling"
				icon = "🔴"
			}
			b.WriteString(fmt.Sprintf("• %s: Institutional %s %s\n", a.Symbol, direction, icon))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// FormatStatus formats the /status reply.
func FormatStatus(st dto.BotStatus) string {
	marketStatus := "🔴 CLOSED"
	if st.MarketOpen {
		marketStatus = "🟢 OPEN"
	}

	var b strings.Builder
	b.WriteString("📊 *BOT STATUS* 📊\n\n")
	b.WriteString(fmt.Sprintf("⏰ *Current Time:* %s\n", utils.PrettyDate(st.Now)))
	b.WriteString(fmt.Sprintf("🏛️ *Market Status:* %s\n\n", marketStatus))

	if len(st.Indices) > 0 {
		b.WriteString("📈 *Major Indices:*\n")
		for _, index := range firstN(st.Indices, 3) {
			b.WriteString(fmt.Sprintf("• %s: %s %s\n", index.Name, signedPct(index.ChangePercent), changeIcon(index.ChangePercent)))
		}
		b.WriteString("\n")
	}

	b.WriteString("🤖 *Bot Status:* 🟢 OPERATIONAL\n\n")
	if st.MarketOpen {
		b.WriteString("*Next Market Open:* Market is currently open\n")
	} else {
		b.WriteString(fmt.Sprintf("*Next Market Open:* %s\n", st.NextOpen.Format("Monday 02-Jan-2006 at 15:04")))
	}
	return b.String()
}

// FormatMostActive formats the /stocks reply when no symbol is given.
func FormatMostActive(movers []dto.MoverEntry) string {
	if len(movers) == 0 {
		return "No stock data available."
	}

	var b strings.Builder
	b.WriteString("📊 *Most Active Stocks Today* 📊\n\n")
	for i, stock := range firstN(movers, 10) {
		b.WriteString(fmt.Sprintf("%d. *%s*: ₹%.2f (%s) %s\n", i+1, stock.Symbol, stock.LastPrice, signedPct(stock.ChangePercent), changeIcon(stock.ChangePercent)))
		b.WriteString(fmt.Sprintf("   Vol: %.2f L\n", float64(stock.Volume)/1e5))
	}
	b.WriteString("\nUse /stocks [symbol] to get detailed information for a specific stock.")
	return b.String()
}

// FormatStockDetail formats the /stocks SYMBOL reply.
func FormatStockDetail(d dto.StockDetail) string {
	q := d.Quote

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📱 *%s Stock Details* 📱\n\n", q.Symbol))
	b.WriteString(fmt.Sprintf("💰 *Price:* ₹%.2f (%s) %s\n", q.LastPrice, signedPct(q.ChangePercent), changeIcon(q.ChangePercent)))
	sector := q.Sector
	if sector == "" {
		sector = "N/A"
	}
	b.WriteString(fmt.Sprintf("🏢 *Sector:* %s\n\n", sector))

	b.WriteString("📊 *Today's Trading:*\n")
	b.WriteString(fmt.Sprintf("• Open: ₹%.2f\n", q.Open))
	b.WriteString(fmt.Sprintf("• High: ₹%.2f\n", q.High))
	b.WriteString(fmt.Sprintf("• Low: ₹%.2f\n", q.Low))
	b.WriteString(fmt.Sprintf("• Volume: %.2f L %s\n\n", float64(q.Volume)/1e5, volumeIcon(q.VolumeChangePercent)))

	if q.RSI != nil || (q.MACD != nil && q.MACDSignal != nil) || (q.EMA50 != nil && q.EMA200 != nil) {
		b.WriteString("📉 *Technical Indicators:*\n")
		if q.RSI != nil {
			b.WriteString(fmt.Sprintf("• RSI: %.2f (%s)\n", *q.RSI, rsiStatus(*q.RSI)))
		}
		if q.MACD != nil && q.MACDSignal != nil {
			status := "Bearish 🔴"
			if *q.MACD > *q.MACDSignal {
				status = "Bullish 🟢"
			}
			b.WriteString(fmt.Sprintf("• MACD: %s\n", status))
		}
		if q.EMA50 != nil && q.EMA200 != nil {
			status := "Bearish 🔴"
			if *q.EMA50 > *q.EMA200 {
				status = "Bullish 🟢"
			}
			b.WriteString(fmt.Sprintf("• EMA: %s (50 vs 200)\n", status))
		}
		b.WriteString("\n")
	}

	if len(d.News) > 0 {
		b.WriteString("📰 *Recent News:*\n")
		for _, n := range firstN(d.News, 2) {
			b.WriteString(fmt.Sprintf("• %s\n", n.Headline))
		}
		b.WriteString("\n")
	}

	if len(d.Activities) > 0 {
		b.WriteString("🐋 *Institutional Activity:*\n")
		for _, a := range d.Activities {
			if a.NetPosition > 0 {
				b.WriteString(fmt.Sprintf("• Net Buying: %d shares 🟢\n", a.BuyQuantity))
			} else {
				b.WriteString(fmt.Sprintf("• Net Selling: %d shares 🔴\n", a.SellQuantity))
			}
		}
	}

	return b.String()
}

// FormatWatchlist formats the /watchlist reply.
func FormatWatchlist(symbols []string) string {
	var b strings.Builder
	b.WriteString("👀 *Your Watchlist* 👀\n\n")
	if len(symbols) == 0 {
		b.WriteString("Your watchlist is empty.\n\n")
	} else {
		for _, symbol := range symbols {
			b.WriteString(fmt.Sprintf("• %s\n", symbol))
		}
		b.WriteString("\n")
	}
	b.WriteString("To add stocks: /watchlist add SYMBOL\nTo remove stocks: /watchlist remove SYMBOL")
	return b.String()
}

// FormatPerformance formats the /performance reply from the live counters.
func FormatPerformance(p dto.PerformanceStats) string {
	var b strings.Builder
	b.WriteString("📊 *Bot Performance Statistics* 📊\n\n")
	b.WriteString(fmt.Sprintf("*Tracking since:* %s\n\n", utils.PrettyDate(p.Since)))
	b.WriteString(fmt.Sprintf("• Evaluation Cycles: %d\n", p.Cycles))
	b.WriteString(fmt.Sprintf("• Signals Generated: %d\n", p.SignalsTotal))
	b.WriteString(fmt.Sprintf("• Alerts Delivered: %d\n\n", p.AlertsDelivered))

	b.WriteString("*By Action:*\n")
	b.WriteString(fmt.Sprintf("• BUY: %d\n", p.ByAction[entity.ActionBuy]))
	b.WriteString(fmt.Sprintf("• SELL: %d\n\n", p.ByAction[entity.ActionSell]))

	b.WriteString("*By Impact:*\n")
	b.WriteString(fmt.Sprintf("• High: %d\n", p.ByImpact[entity.ImpactHigh]))
	b.WriteString(fmt.Sprintf("• Medium: %d\n", p.ByImpact[entity.ImpactMedium]))
	b.WriteString(fmt.Sprintf("• Low: %d\n", p.ByImpact[entity.ImpactLow]))
	return b.String()
}

// WelcomeMessage is the /start reply.
const WelcomeMessage = `🚀 *Welcome to Indian Stock Market Alert Bot* 🚀

This bot provides real-time Indian stock market alerts based on:
- Breaking news with sentiment analysis
- Institutional (whale) trading activity
- Volume anomalies and price action

*Available Commands:*
/start - Show this welcome message
/help - Get help on bot usage
/status - Check market and bot status
/stocks - List stocks being tracked
/watchlist - Manage your watchlist
/performance - View bot performance stats

The bot automatically sends alerts during market hours (9:15 AM - 3:30 PM, Mon-Fri) when significant trading opportunities are detected.

_Stay informed, trade smarter!_ 📈`

// HelpMessage is the /help reply.
const HelpMessage = `📚 *Indian Stock Market Alert Bot - Help* 📚

*Commands:*
/start - Start the bot and receive welcome message
/help - Display this help message
/status - Check market status and bot operation
/stocks [symbol] - Get details for a specific stock or list most active stocks
/watchlist - View your current watchlist
/watchlist add [symbol] - Add a stock to your watchlist
/watchlist remove [symbol] - Remove a stock from your watchlist
/performance - View the bot's alert performance statistics

*Alert Types:*
📰 *News-Based Alerts* - Trading signals based on market news and sentiment analysis
🐋 *Institutional Activity* - Alerts when significant institutional buying or selling is detected
📊 *Technical Alerts* - Signals based on volume spikes and price action

*Alert Format:*
Each alert includes the stock symbol and sector, the triggering headline, sentiment and impact analysis, the recommended action (BUY/SELL), entry price with targets and stop loss, and the reasoning behind the alert.

*Market Hours:*
The bot operates during Indian market hours (9:15 AM - 3:30 PM, Mon-Fri).

*Disclaimer:*
Trading alerts are for informational purposes only. Make trading decisions based on your own research and risk tolerance.`

func sentimentLabel(s entity.Sentiment) string {
	switch s {
	case entity.SentimentPositive:
		return "😀 Positive"
	case entity.SentimentNegative:
		return "😟 Negative"
	default:
		return "😐 Neutral"
	}
}

func impactLabel(i entity.Impact) string {
	switch i {
	case entity.ImpactHigh:
		return "🔥 High"
	case entity.ImpactMedium:
		return "⚡ Medium"
	default:
		return "💧 Low"
	}
}

func actionLabel(a entity.Action) string {
	switch a {
	case entity.ActionBuy:
		return "🟢 BUY"
	case entity.ActionSell:
		return "🔴 SELL"
	default:
		return "⚪ HOLD"
	}
}

func changeIcon(change float64) string {
	switch {
	case change > 0:
		return "🟢"
	case change < 0:
		return "🔴"
	default:
		return "⚪"
	}
}

func volumeIcon(volumeChange *float64) string {
	if volumeChange == nil {
		return "↔️"
	}
	switch {
	case *volumeChange > 20:
		return "📈"
	case *volumeChange < -20:
		return "📉"
	default:
		return "↔️"
	}
}

func rsiStatus(rsi float64) string {
	switch {
	case rsi > 70:
		return "Overbought ⚠️"
	case rsi < 30:
		return "Oversold ⚠️"
	default:
		return "Neutral ↔️"
	}
}

// pctDelta renders the signed percent distance from entry to level with one
// decimal place.
func pctDelta(entry, level float64) string {
	if entry == 0 {
		return "0.0%"
	}
	delta := (level/entry - 1) * 100
	return fmt.Sprintf("%+.1f%%", delta)
}

func signedPct(change float64) string {
	return fmt.Sprintf("%+.2f%%", change)
}

func firstN[T any](items []T, n int) []T {
	if len(items) < n {
		return items
	}
	return items[:n]
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
