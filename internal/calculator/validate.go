package calculator

import (
	"fmt"

	"github.com/colin-rod/tripthreads/internal/models"
)

// shareSumTolerance is how far, in minor units, the participant shares may
// drift from the expense total before the split counts as invalid. Equal
// splits of amounts that don't divide evenly legitimately drift by one.
const shareSumTolerance models.MinorUnits = 1

// ShareSumError reports an expense whose participant shares do not add up
// to its total amount.
type ShareSumError struct {
	ExpenseID string
	Total     models.MinorUnits
	ShareSum  models.MinorUnits
}

func (e ShareSumError) Error() string {
	return fmt.Sprintf("expense %s: participant shares sum to %d, total is %d", e.ExpenseID, e.ShareSum, e.Total)
}

// ValidateShares checks that an expense's participant shares sum to its
// total amount within the rounding tolerance.
//
// This helper belongs at the boundary that creates expenses. Balance
// computation deliberately does not call it: an out-of-balance split is an
// upstream data-integrity problem, and the engine processes the shares as
// given rather than failing a whole trip's summary over one bad expense.
func ValidateShares(expense models.Expense) error {
	var sum models.MinorUnits
	for _, p := range expense.Participants {
		sum += p.ShareAmount
	}

	drift := sum - expense.Amount
	if drift < 0 {
		drift = -drift
	}
	if drift > shareSumTolerance {
		return ShareSumError{ExpenseID: expense.ID, Total: expense.Amount, ShareSum: sum}
	}
	return nil
}
