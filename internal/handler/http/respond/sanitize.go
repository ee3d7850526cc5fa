package respond

import (
	"regexp"
)

var (
	// データベースパスワードパターン（DSN内）
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
	// password=... 形式の接続文字列
	kvPasswordPattern = regexp.MustCompile(`(?i)(password=)\S+`)
	// Authorization ヘッダーに載る JWT
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.]+`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	return msg
}
