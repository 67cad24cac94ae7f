package services

const (
	fulfillmentMinSize = 200 * 1024
	noteMaxSize        = 10 * 1024 * 1024
)

var noteMIMEWhitelist = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
}

// ValidateFulfillmentFile checks a request-fulfillment upload against the
// structural policy: PDF only, 200KB to 10MB. It returns every violated
// constraint, not just the first.
func ValidateFulfillmentFile(fileType string, fileSize int64) []string {
	var violations []string
	if fileType != "application/pdf" {
		violations = append(violations, "Only PDF files are allowed")
	}
	if fileSize < fulfillmentMinSize {
		violations = append(violations, "File must be at least 200KB")
	}
	if fileSize > noteMaxSize {
		violations = append(violations, "File must be less than 10MB")
	}
	return violations
}

// ValidateNoteFile checks a general note upload: any whitelisted type up to
// 10MB, no size floor.
func ValidateNoteFile(fileType string, fileSize int64) []string {
	var violations []string
	if !noteMIMEWhitelist[fileType] {
		violations = append(violations, "File must be a PDF or image (JPG, PNG, GIF, WEBP)")
	}
	if fileSize > noteMaxSize {
		violations = append(violations, "File size must be less than 10MB")
	}
	return violations
}
