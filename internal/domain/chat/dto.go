package chat

import (
	"github.com/taskora/taskora-backend-go/internal/pkg/validator"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Messages []Message `json:"messages"`
}

func (r *CompletionRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Messages) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "messages",
			Message: "messages must not be empty",
		})
	}
	for _, m := range r.Messages {
		if !validator.IsInSlice(m.Role, []string{"system", "user", "assistant"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "messages",
				Message: "message role must be one of: system, user, assistant",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
