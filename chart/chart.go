// Package chart renders a round's price history as a standalone HTML page.
package chart

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/rustyeddy/flashtrade/indicators"
	"github.com/rustyeddy/flashtrade/sim"
)

const (
	widthPx  = 960
	heightPx = 480

	colorBackground    = "#060c1b"
	colorTextPrimary   = "#eceff4"
	colorTextSecondary = "#9ca3af"
	colorBull          = "#34d399"
	colorBear          = "#f87171"
	colorEMA           = "#fbbf24"
	colorMA            = "#f472b6"

	// EMAPeriod and MAPeriod size the smoothing overlays drawn over the
	// price line.
	EMAPeriod = 10
	MAPeriod  = 20
)

// ExitPrices returns the prices at which s would hit its take-profit and
// stop-loss thresholds.
func ExitPrices(s sim.RoundState) (tp, sl float64) {
	cfg := s.Config
	if cfg.Leverage < 1 {
		return s.EntryPrice, s.EntryPrice
	}
	sign := cfg.Direction.Sign()
	lev := float64(cfg.Leverage)
	tp = s.EntryPrice * (1 + sign*cfg.TakeProfit/lev)
	sl = s.EntryPrice * (1 - sign*cfg.StopLoss/lev)
	return tp, sl
}

// RenderHistory writes a line chart of s.History with the entry, take-profit
// and stop-loss levels marked.
func RenderHistory(w io.Writer, s sim.RoundState) error {
	if len(s.History) == 0 {
		return fmt.Errorf("chart: round %q has no price history", s.ID)
	}

	xAxis := make([]string, len(s.History))
	data := make([]opts.LineData, len(s.History))
	for i, p := range s.History {
		xAxis[i] = time.UnixMilli(p.TimestampMs).UTC().Format("15:04:05")
		data[i] = opts.LineData{Value: round(p.Price, 6)}
	}

	tp, sl := ExitPrices(s)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:           types.ThemeWesteros,
			Width:           fmt.Sprintf("%dpx", widthPx),
			Height:          fmt.Sprintf("%dpx", heightPx),
			BackgroundColor: colorBackground,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         fmt.Sprintf("%s %s %dx", s.Config.Symbol, s.Config.Direction, s.Config.Leverage),
			Subtitle:      subtitle(s),
			TitleStyle:    &opts.TextStyle{Color: colorTextPrimary, FontSize: 18},
			SubtitleStyle: &opts.TextStyle{Color: colorTextSecondary},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale:     opts.Bool(true),
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: colorTextSecondary, Opacity: opts.Float(0.2)}},
		}),
	)

	line.SetXAxis(xAxis).AddSeries("price", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: pnlColor(s), Width: 2}),
		charts.WithMarkLineNameYAxisItemOpts(
			opts.MarkLineNameYAxisItem{Name: "entry", YAxis: round(s.EntryPrice, 6)},
			opts.MarkLineNameYAxisItem{Name: "take profit", YAxis: round(tp, 6)},
			opts.MarkLineNameYAxisItem{Name: "stop loss", YAxis: round(sl, 6)},
		),
	)

	for _, o := range []struct {
		ind   indicators.Indicator
		color string
	}{
		{indicators.NewEMA(EMAPeriod), colorEMA},
		{indicators.NewMA(MAPeriod), colorMA},
	} {
		line.AddSeries(o.ind.Name(), overlayData(o.ind, s),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: o.color, Width: 1}),
		)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("chart: render: %w", err)
	}
	return nil
}

func overlayData(ind indicators.Indicator, s sim.RoundState) []opts.LineData {
	values, ok := indicators.Series(ind, s.History)
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		if !ok[i] {
			data[i] = opts.LineData{Value: nil}
			continue
		}
		data[i] = opts.LineData{Value: round(v, 6)}
	}
	return data
}

func subtitle(s sim.RoundState) string {
	status := "running " + s.FormatRemaining()
	if s.Terminal() {
		status = string(s.Outcome)
	}
	return fmt.Sprintf("entry %.6g  last %.6g  pnl %+.2f%%  %s",
		s.EntryPrice, s.CurrentPrice, s.PnLFraction*100, status)
}

func pnlColor(s sim.RoundState) string {
	if s.PnLFraction < 0 {
		return colorBear
	}
	return colorBull
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
