package domain

// ExportFormat selects the serialization of an export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
)

// IsValid reports whether f is csv or json.
func (f ExportFormat) IsValid() bool {
	return f == ExportFormatCSV || f == ExportFormatJSON
}

// ContentType returns the MIME type served for the format.
func (f ExportFormat) ContentType() string {
	if f == ExportFormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// TransactionCSVHeader is the fixed column order of a transaction export.
var TransactionCSVHeader = []string{"id", "amount", "merchantName", "status", "timestamp", "userId", "location", "currency"}

// MerchantCSVHeader is the fixed column order of a merchant export.
var MerchantCSVHeader = []string{"id", "name", "city", "transactionCount", "transactionVolume"}
