package format

import (
	"fmt"
	"strings"

	"github.com/faanross/dnspeek/internal/resolver"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders a result set as a multi-line text document: a header naming
// the domain, then one block per requested type in request order.
//
// In compact mode, blocks with no records and no error are omitted; when
// that leaves nothing visible a single summary line is emitted instead.
func Table(rs *resolver.ResultSet, compact bool) string {
	var b strings.Builder

	b.WriteString(color.New(color.Bold).Sprintf("DNS records for %s", rs.Domain))
	b.WriteString("\n")

	visible := 0
	for _, res := range rs.Results {
		if compact && res.Error == "" && len(res.Records) == 0 {
			continue
		}
		visible++

		b.WriteString("\n")
		switch {
		case res.Error != "":
			b.WriteString(fmt.Sprintf("❌ %s: %s\n", res.Type, color.RedString(res.Error)))
		case len(res.Records) == 0:
			b.WriteString(fmt.Sprintf("➖ %s: no records\n", res.Type))
		default:
			b.WriteString(fmt.Sprintf("✅ %s\n", res.Type))
			b.WriteString(renderRecords(res))
		}
	}

	if compact && visible == 0 {
		b.WriteString("\nNo records found.\n")
	}

	return b.String()
}

// renderRecords lays out one type's records. Structured types get columns,
// SOA gets label/value rows, everything else a flat list.
func renderRecords(res resolver.QueryResult) string {
	switch res.Type {
	case resolver.RecordTypeSOA:
		return labelTable(res.Records)
	case resolver.RecordTypeMX:
		return columnTable([]string{"Priority", "Exchange"}, res.Records)
	case resolver.RecordTypeCAA:
		return columnTable([]string{"Flags", "Tag", "Value"}, res.Records)
	case resolver.RecordTypeSRV:
		return columnTable([]string{"Priority", "Weight", "Port", "Target"}, res.Records)
	default:
		var b strings.Builder
		for _, rec := range res.Records {
			b.WriteString("   " + rec + "\n")
		}
		return b.String()
	}
}

// columnTable splits each record on spaces into as many fields as there are
// headers; the final field keeps any remaining spaces.
func columnTable(headers []string, records []string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	hdr := make(table.Row, 0, len(headers))
	for _, h := range headers {
		hdr = append(hdr, h)
	}
	t.AppendHeader(hdr)

	for _, rec := range records {
		row := make(table.Row, 0, len(headers))
		for _, part := range strings.SplitN(rec, " ", len(headers)) {
			row = append(row, part)
		}
		t.AppendRow(row)
	}

	return t.Render() + "\n"
}

// labelTable splits each "Label: value" record on its first ": ".
func labelTable(records []string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	for _, rec := range records {
		label, value, _ := strings.Cut(rec, ": ")
		t.AppendRow(table.Row{label, value})
	}

	return t.Render() + "\n"
}
