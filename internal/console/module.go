package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"berdoz/internal/client"
	"berdoz/internal/core"
	"berdoz/internal/favm"
)

// moduleView erases the record type of one view model so the loop can
// switch modules at runtime.
type moduleView interface {
	Name() string
	Load(ctx context.Context) error
	Loaded() int
	State() favm.ViewState
	SetQuery(q string)
	SetTable(f favm.PeriodFilter)
	SetSummary(f favm.PeriodFilter)
	Render(w io.Writer) error
	CreateJSON(ctx context.Context, raw []byte) (string, error)
	Delete(ctx context.Context, id string) error
}

type boundModule[T core.Record[T]] struct {
	vm *favm.ViewModel[T]
}

func bind[T core.Record[T]](h *client.HTTP, module favm.Module[T], opts ...favm.Option) moduleView {
	return &boundModule[T]{vm: favm.NewViewModel(module, client.For[T](h, module.Endpoint), opts...)}
}

func (b *boundModule[T]) Name() string                   { return b.vm.Module().Name }
func (b *boundModule[T]) Load(ctx context.Context) error { return b.vm.Load(ctx) }
func (b *boundModule[T]) Loaded() int                    { return len(b.vm.Records()) }
func (b *boundModule[T]) State() favm.ViewState          { return b.vm.State() }
func (b *boundModule[T]) SetQuery(q string)              { b.vm.SetQuery(q) }
func (b *boundModule[T]) SetTable(f favm.PeriodFilter)   { b.vm.SetTableFilter(f) }
func (b *boundModule[T]) SetSummary(f favm.PeriodFilter) { b.vm.SetSummaryFilter(f) }

func (b *boundModule[T]) Delete(ctx context.Context, id string) error {
	return b.vm.Delete(ctx, id)
}

// CreateJSON decodes one record and saves it as new.
func (b *boundModule[T]) CreateJSON(ctx context.Context, raw []byte) (string, error) {
	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		return "", fmt.Errorf("decode %s record: %w", b.Name(), err)
	}
	if err := b.vm.Begin(); err != nil {
		return "", err
	}
	meta := rec.GetMeta()
	meta.ID = b.vm.NewTempID()
	saved, err := b.vm.Save(ctx, rec.WithMeta(meta))
	if err != nil {
		b.vm.Cancel()
		return "", err
	}
	return saved.GetID(), nil
}

// Render prints the visible rows, their totals and the headline summary.
func (b *boundModule[T]) Render(w io.Writer) error {
	module := b.vm.Module()
	view := b.vm.View()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPERIOD\tDETAILS")
	for _, rec := range view.Records {
		year, month := rec.Period()
		period := year.String()
		if month != "" {
			period += "/" + month.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.GetID(), period, truncate(details(module, rec), 80))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d of %d records\n", view.Count, b.Loaded())
	printTotals(w, "Visible", view.Totals)
	fmt.Fprintf(w, "Summary (%d records)\n", view.Summary.Count)
	printTotals(w, "", view.Summary.Totals)
	return nil
}

// details joins the non-empty searchable field values of rec.
func details[T core.Record[T]](module favm.Module[T], rec T) string {
	parts := make([]string, 0, len(module.Fields))
	for _, f := range module.Fields {
		if v := strings.TrimSpace(f.Value(rec)); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}

func printTotals(w io.Writer, title string, totals core.Totals) {
	if len(totals) == 0 {
		return
	}
	if title != "" {
		fmt.Fprintln(w, title)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, t := range totals {
		fmt.Fprintf(tw, "  %s\t%s\t\n", t.Name, t.Amount.Format())
	}
	_ = tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
