package conversation

// Level is the severity of a transient notice.
type Level string

const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a toast-like message shown outside the conversation log.
type Notice struct {
	Level       Level
	Title       string
	Description string
}

// Notifier delivers notices to the user.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

// User-facing texts.
const (
	TextTooLong = "メッセージは1000文字以内で入力してください。"
	TextTimeout = "応答がタイムアウトしました。もう一度お試しください。"
	TextNetwork = "サーバーに接続できません。ネットワーク接続を確認してください。"
	TextGeneric = "申し訳ありません。エラーが発生しました。しばらくしてからもう一度お試しください。"

	titleTooLong = "入力エラー"
	titleTimeout = "タイムアウト"
	titleNetwork = "接続エラー"
	titleGeneric = "エラー"
)
