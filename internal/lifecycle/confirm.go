package lifecycle

import (
	"context"

	"github.com/flemzord/cronpad/internal/crontab"
	"github.com/flemzord/cronpad/internal/prompt"
)

// Confirmer asks the operator to approve an action on a job.
type Confirmer interface {
	Confirm(ctx context.Context, action string, job *crontab.Job) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, action string, job *crontab.Job) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, action string, job *crontab.Job) (bool, error) {
	return f(ctx, action, job)
}

// PromptConfirmer asks through p and accepts only y or n.
func PromptConfirmer(p prompt.Prompter) Confirmer {
	return ConfirmFunc(func(ctx context.Context, action string, job *crontab.Job) (bool, error) {
		p.Printf("Are you sure you want to %s the following job:\n(%s)\n", action, job.Line())
		return prompt.Confirm(ctx, p, "")
	})
}
