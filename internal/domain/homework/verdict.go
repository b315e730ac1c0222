// internal/domain/homework/verdict.go
package homework

// Status is the review state reported by the Practicum API for a homework.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// VerdictTable maps a review status to the sentence sent to the chat.
type VerdictTable map[Status]string

// DefaultVerdicts returns the closed set of statuses the bot understands.
// A fresh map is returned on every call so callers can't mutate a shared table.
func DefaultVerdicts() VerdictTable {
	return VerdictTable{
		StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
		StatusReviewing: "Работа взята на проверку ревьюером.",
		StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
	}
}

// NoUpdatesMessage is sent when the API reports no homework changes.
const NoUpdatesMessage = "Обновлений нет."
