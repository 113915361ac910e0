// Package result defines the envelope returned by the query tools.
//
// Remote GraphQL failures and jq-filter problems are reported inside this
// envelope rather than as protocol errors, so the calling LLM always gets
// something it can read: a status, the data (possibly unfiltered) and a
// human message explaining what went wrong.
package result

// Status classifies a query outcome.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusWarning Status = "warning"
)

// QueryResult is the outcome of a single GraphQL query, optionally
// post-processed by a jq filter.
type QueryResult struct {
	Status  Status `json:"status"`
	Result  any    `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success wraps data from a query that completed cleanly.
func Success(data any) QueryResult {
	return QueryResult{Status: StatusSuccess, Result: data}
}

// Error reports a failed query. Result stays empty.
func Error(message string) QueryResult {
	return QueryResult{Status: StatusError, Message: message}
}

// Warning carries data alongside a message, used when the query succeeded
// but the jq filter could not be applied: the caller still gets the raw
// result plus a tip on fixing the filter.
func Warning(data any, message string) QueryResult {
	return QueryResult{Status: StatusWarning, Result: data, Message: message}
}

// BatchItem is one entry of a batch query, tagged with its position and the
// value of the key variable so results stay attributable after fan-out.
type BatchItem struct {
	Index  int         `json:"index"`
	Key    string      `json:"key,omitempty"`
	Result QueryResult `json:"result"`
}

// BatchSummary counts outcomes across a batch.
type BatchSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Warning    int `json:"warning"`
}

// BatchQueryResult is the aggregate of a fan-out query run.
type BatchQueryResult struct {
	Results []BatchItem  `json:"results"`
	Summary BatchSummary `json:"summary"`
}

// Summarize tallies the per-item statuses into a BatchSummary.
func Summarize(items []BatchItem) BatchSummary {
	summary := BatchSummary{Total: len(items)}
	for _, item := range items {
		switch item.Result.Status {
		case StatusSuccess:
			summary.Successful++
		case StatusWarning:
			summary.Warning++
		default:
			summary.Failed++
		}
	}
	return summary
}
