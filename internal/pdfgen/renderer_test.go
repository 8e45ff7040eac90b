package pdfgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/firedesk/timecard/internal/kronos"
)

type fakePDFClient struct {
	lastHTML string
	out      []byte
	err      error
}

func (f *fakePDFClient) RenderHTML(_ context.Context, html string) ([]byte, error) {
	f.lastHTML = html
	return f.out, f.err
}

func testDocument() Document {
	return Document{
		EmployeeID:     "891",
		EmployeeName:   "J. Smith",
		EmployeeRank:   "Captain",
		PayPeriodLabel: "2024-09-09 to 2024-09-22",
		Entries: []kronos.ScheduleEntry{
			{Date: "2024-09-09", EmployeeID: "891", Code: "REG", Hours: 24, Unit: "ST4", Position: "CPT"},
			{Date: "2024-09-11", EmployeeID: "891", Code: "OT", Hours: 12.5, Unit: "ST4", Position: "CPT"},
		},
		WorkCodeTotals:  map[string]float64{"REG": 24, "OT": 12.5},
		GrandTotalHours: 36.5,
		Signature:       Signature{Name: "J. Smith", Date: "2024-09-22"},
	}
}

func TestRenderHTML(t *testing.T) {
	r, err := NewRenderer(&fakePDFClient{})
	require.NoError(t, err)

	html, err := r.RenderHTML(testDocument())
	require.NoError(t, err)
	require.Contains(t, html, "J. Smith")
	require.Contains(t, html, "Employee ID: 891")
	require.Contains(t, html, "2024-09-09 to 2024-09-22")
	require.Contains(t, html, "Rank: Captain")
	require.Contains(t, html, "12.5")
	require.Contains(t, html, "36.5")
	require.Contains(t, html, "Signed by: J. Smith")
}

func TestRender(t *testing.T) {
	client := &fakePDFClient{out: []byte("%PDF-1.7 fake")}
	r, err := NewRenderer(client)
	require.NoError(t, err)

	pdf, err := r.Render(context.Background(), testDocument())
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.7 fake"), pdf)
	require.Contains(t, client.lastHTML, "Timecard")
}

func TestNewRendererRequiresClient(t *testing.T) {
	_, err := NewRenderer(nil)
	require.Error(t, err)
}
