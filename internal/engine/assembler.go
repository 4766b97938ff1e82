package engine

import (
	"context"
	"fmt"
	"sort"

	"stock-alert-bot/internal/dedup"
	"stock-alert-bot/internal/entity"
	"stock-alert-bot/pkg/logger"
)

// Snapshot is one evaluation cycle's fully resolved input data. The assembler
// performs no I/O: quotes and volatilities are gathered up front by the
// caller, and a symbol simply missing from a map degrades that pairing
// instead of failing the cycle.
type Snapshot struct {
	News       []entity.NewsItem
	Quotes     map[string]entity.Quote
	Activities []entity.InstitutionalActivity
	Volatility map[string]float64
}

// Config carries the engine's tunable scoring constants.
type Config struct {
	Impact               ImpactConfig
	VolumeSpikeThreshold float64
}

// DefaultConfig returns the production engine constants.
func DefaultConfig() Config {
	return Config{
		Impact:               DefaultImpactConfig(),
		VolumeSpikeThreshold: DefaultVolumeSpikeThreshold,
	}
}

// Assembler turns a Snapshot into a deduplicated, ranked list of actionable
// signals.
type Assembler struct {
	scorer   PolarityScorer
	impact   *ImpactScorer
	resolver *ActionResolver
	seen     dedup.Store
	log      *logger.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(scorer PolarityScorer, cfg Config, seen dedup.Store, log *logger.Logger) *Assembler {
	return &Assembler{
		scorer:   scorer,
		impact:   NewImpactScorer(cfg.Impact),
		resolver: NewActionResolver(cfg.VolumeSpikeThreshold),
		seen:     seen,
		log:      log,
	}
}

// Assemble evaluates one cycle. News items already observed are skipped
// permanently; HOLD pairings are discarded; institutional activity without a
// news-driven signal for its symbol is synthesized into a high-impact signal.
// The result is sorted by impact descending, preserving emission order within
// each impact level.
func (a *Assembler) Assemble(ctx context.Context, snap Snapshot) []entity.Signal {
	activityBySymbol := make(map[string]entity.InstitutionalActivity, len(snap.Activities))
	for _, act := range snap.Activities {
		activityBySymbol[act.Symbol] = act
	}

	var signals []entity.Signal
	emitted := make(map[string]bool)

	for _, item := range snap.News {
		first, err := a.seen.Observe(ctx, item.HashIdentifier())
		if err != nil {
			a.log.Warn("Dedup store unavailable, skipping news item for this cycle",
				logger.ErrorField(err), logger.StringField("headline", item.Headline))
			continue
		}
		if !first {
			continue
		}

		compound := a.compound(ctx, item.Headline)
		sentiment := ClassifySentiment(compound)

		for _, symbol := range item.Symbols {
			quote, ok := snap.Quotes[symbol]
			if !ok {
				a.log.DebugContext(ctx, "No quote for symbol, skipping pairing",
					logger.StringField("symbol", symbol))
				continue
			}

			flow := FlowFromNetPosition(activityBySymbol[symbol].NetPosition)
			action, reason := a.resolver.Resolve(sentiment, quote.VolumeChangePercent, flow)
			if action == entity.ActionHold {
				continue
			}

			signals = append(signals, entity.Signal{
				Symbol:    symbol,
				Sector:    sectorOf(quote),
				Headline:  item.Headline,
				Sentiment: sentiment,
				Impact:    a.impact.Score(item.Headline, compound, quote.VolumeChangePercent),
				Action:    action,
				Reason:    reason,
				URL:       item.URL,
				Targets:   a.targetsFor(ctx, symbol, quote.LastPrice, action, snap.Volatility),
			})
			emitted[symbol] = true
		}
	}

	for _, act := range snap.Activities {
		if act.NetPosition == 0 || emitted[act.Symbol] {
			continue
		}
		quote, ok := snap.Quotes[act.Symbol]
		if !ok {
			a.log.DebugContext(ctx, "No quote for institutional activity, skipping",
				logger.StringField("symbol", act.Symbol))
			continue
		}

		signals = append(signals, a.activitySignal(ctx, act, quote, snap.Volatility))
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Impact.Rank() > signals[j].Impact.Rank()
	})

	return signals
}

// activitySignal synthesizes a signal for institutional activity that had no
// news coverage this cycle. Institutional flow is always treated as high
// impact.
func (a *Assembler) activitySignal(ctx context.Context, act entity.InstitutionalActivity, quote entity.Quote, volatility map[string]float64) entity.Signal {
	action := entity.ActionBuy
	sentiment := entity.SentimentPositive
	headline := "Institutional buying activity detected"
	reason := fmt.Sprintf("Institutional buying of %d shares", act.BuyQuantity)
	if act.NetPosition < 0 {
		action = entity.ActionSell
		sentiment = entity.SentimentNegative
		headline = "Institutional selling activity detected"
		reason = fmt.Sprintf("Institutional selling of %d shares", act.SellQuantity)
	}

	return entity.Signal{
		Symbol:    act.Symbol,
		Sector:    sectorOf(quote),
		Headline:  headline,
		Sentiment: sentiment,
		Impact:    entity.ImpactHigh,
		Action:    action,
		Reason:    reason,
		Targets:   a.targetsFor(ctx, act.Symbol, quote.LastPrice, action, volatility),
	}
}

// compound scores text, degrading to neutral when the scorer is unavailable.
func (a *Assembler) compound(ctx context.Context, text string) float64 {
	compound, err := a.scorer.Compound(ctx, text)
	if err != nil {
		a.log.Warn("Polarity scorer failed, treating text as neutral",
			logger.ErrorField(err), logger.StringField("text", text))
		return 0
	}
	return compound
}

// targetsFor computes price targets, substituting the default volatility when
// none was resolved for the symbol. A missing or invalid price yields no
// targets rather than dropping the signal.
func (a *Assembler) targetsFor(ctx context.Context, symbol string, price float64, action entity.Action, volatility map[string]float64) *entity.PriceTargets {
	if price <= 0 {
		return nil
	}
	vol, ok := volatility[symbol]
	if !ok {
		vol = DefaultVolatility
	}
	targets, err := CalculatePriceTargets(price, action, vol)
	if err != nil {
		a.log.Error("Failed to calculate price targets",
			logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil
	}
	return &targets
}

func sectorOf(quote entity.Quote) string {
	if quote.Sector == "" {
		return "N/A"
	}
	return quote.Sector
}
