package workbook

// ColRowID is the opaque per-row identifier column. The XLSX format has no
// native primary key, so every sheet that supports row-level deletes carries
// this generated token column.
const ColRowID = "row_id"

// Sheet names. The loan ledger is split across one sheet per calendar month.
const (
	SheetClients      = "clients"
	SheetTransactions = "transactions"
	SheetCohort       = "cohort_30d"
)

// LoanSheets lists the monthly loan ledger sheets in calendar order.
var LoanSheets = []string{
	"loans_jan", "loans_feb", "loans_mar", "loans_apr", "loans_may", "loans_jun",
	"loans_jul", "loans_aug", "loans_sep", "loans_oct", "loans_nov", "loans_dec",
}

// WeeklySheets lists the optional per-month weekly detail sheets.
var WeeklySheets = []string{
	"weekly_jan", "weekly_feb", "weekly_mar", "weekly_apr", "weekly_may", "weekly_jun",
	"weekly_jul", "weekly_aug", "weekly_sep", "weekly_oct", "weekly_nov", "weekly_dec",
}

// Kind describes the value family of a column, used when backfilling a
// missing column with a type-appropriate default.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindNumber
)

// Default returns the cell value used when the column is backfilled.
func (k Kind) Default() string {
	if k == KindNumber {
		return "0"
	}

	return ""
}

type Column struct {
	Name string
	Kind Kind
}

// SheetSpec declares the required column set of a sheet. Missing columns are
// created on load; mandatory sheets missing from the file are a structural
// error, optional ones are backfilled empty.
type SheetSpec struct {
	Name      string
	Mandatory bool
	Columns   []Column
}

var loanColumns = []Column{
	{Name: "date", Kind: KindDate},
	{Name: "agent", Kind: KindText},
	{Name: "beneficiary", Kind: KindText},
	{Name: "pix_key", Kind: KindText},
	{Name: "transacted_amount", Kind: KindNumber},
	{Name: "released_amount", Kind: KindNumber},
	{Name: "installments", Kind: KindNumber},
	{Name: "agent_percent", Kind: KindNumber},
	{Name: "interest_fee", Kind: KindNumber},
	{Name: "agent_extra", Kind: KindNumber},
	{Name: "commission", Kind: KindNumber},
	{Name: "net_amount", Kind: KindNumber},
	{Name: "invoice_estimate", Kind: KindNumber},
	{Name: "percent_transacted", Kind: KindNumber},
	{Name: "percent_released", Kind: KindNumber},
	{Name: ColRowID, Kind: KindText},
}

var weeklyColumns = []Column{
	{Name: "tax_id", Kind: KindText},
	{Name: "week", Kind: KindNumber},
	{Name: "amount", Kind: KindNumber},
	{Name: "recorded_at", Kind: KindDate},
	{Name: ColRowID, Kind: KindText},
}

// RevenueColumns are the wide per-month revenue columns of the client
// registry, in the fiscal December-first order the dashboards plot.
var RevenueColumns = []string{
	"revenue_december", "revenue_january", "revenue_february", "revenue_march",
	"revenue_april", "revenue_may", "revenue_june", "revenue_july",
	"revenue_august", "revenue_september", "revenue_october", "revenue_november",
}

func clientColumns() []Column {
	cols := []Column{
		{Name: "registered_at", Kind: KindDate},
		{Name: "approved_at", Kind: KindDate},
		{Name: "name", Kind: KindText},
		{Name: "tax_id", Kind: KindText},
		{Name: "contact_name", Kind: KindText},
		{Name: "contact_phone", Kind: KindText},
		{Name: "contact_tax_id", Kind: KindText},
		{Name: "representative", Kind: KindText},
		{Name: "portal_status", Kind: KindText},
		{Name: "acquirer_status", Kind: KindText},
		{Name: "sub_status", Kind: KindText},
		{Name: "acquirer_email", Kind: KindText},
		{Name: "plan", Kind: KindText},
		{Name: "status", Kind: KindText},
	}

	for _, rc := range RevenueColumns {
		cols = append(cols, Column{Name: rc, Kind: KindNumber})
	}

	return append(cols, Column{Name: ColRowID, Kind: KindText})
}

// SpecFor returns the declared spec of one sheet.
func SpecFor(name string) (SheetSpec, bool) {
	for _, spec := range Specs() {
		if spec.Name == name {
			return spec, true
		}
	}

	return SheetSpec{}, false
}

// Specs returns the full sheet layout of the workbook in persisted order.
func Specs() []SheetSpec {
	specs := []SheetSpec{
		{Name: SheetClients, Mandatory: true, Columns: clientColumns()},
		{Name: SheetTransactions, Mandatory: true, Columns: []Column{
			{Name: "tax_id", Kind: KindText},
			{Name: "date", Kind: KindDate},
			{Name: "amount", Kind: KindNumber},
			{Name: "status", Kind: KindText},
			{Name: ColRowID, Kind: KindText},
		}},
		{Name: SheetCohort, Mandatory: true, Columns: []Column{
			{Name: "tax_id", Kind: KindText},
			{Name: "enrolled_at", Kind: KindDate},
			{Name: "observations", Kind: KindText},
			{Name: "frequency", Kind: KindText},
			{Name: "running_average", Kind: KindNumber},
			{Name: ColRowID, Kind: KindText},
		}},
	}

	for _, name := range LoanSheets {
		specs = append(specs, SheetSpec{Name: name, Columns: loanColumns})
	}

	for _, name := range WeeklySheets {
		specs = append(specs, SheetSpec{Name: name, Columns: weeklyColumns})
	}

	return specs
}
