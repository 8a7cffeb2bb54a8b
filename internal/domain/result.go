package domain

// ResultRecord is the per-address outcome of one run.
//
// Exactly one of three shapes is produced:
//   - {"ok": true}                          fetch succeeded, insert succeeded
//   - {"ok": false, "mongo_error": "..."}   fetch succeeded, insert failed
//   - {"error": "...", "status_code": 404}  fetch failed (status_code only for HTTP errors)
type ResultRecord struct {
	OK         *bool  `json:"ok,omitempty"`
	MongoError string `json:"mongo_error,omitempty"`
	Error      string `json:"error,omitempty"`
	StatusCode *int   `json:"status_code,omitempty"`
}

// OKRecord returns the record for a fully successful address.
func OKRecord() ResultRecord {
	ok := true
	return ResultRecord{OK: &ok}
}

// StoreErrorRecord returns the record for a fetched address whose insert failed.
func StoreErrorRecord(msg string) ResultRecord {
	ok := false
	return ResultRecord{OK: &ok, MongoError: msg}
}

// FetchErrorRecord returns the record for a failed fetch. statusCode is nil
// for transport-level failures.
func FetchErrorRecord(msg string, statusCode *int) ResultRecord {
	return ResultRecord{Error: msg, StatusCode: statusCode}
}

// RunResults maps each resolved address to its outcome. Later entries for a
// duplicate address overwrite earlier ones.
type RunResults map[string]ResultRecord
