package calculator

import "github.com/colin-rod/tripthreads/internal/models"

// settleEpsilon is the tolerance, in minor units, below which a balance
// counts as settled. One minor unit absorbs the rounding drift that
// share-splitting can introduce.
const settleEpsilon models.MinorUnits = 1

// Optimize turns net balances into a minimal practical set of directed
// transfers using the minimum-cash-flow heuristic:
//
//	repeatedly match the largest creditor with the largest debtor and
//	transfer min(credit, debt), until everyone is within epsilon of zero.
//
// Ties on magnitude go to the participant that appeared first in the input,
// so the output is deterministic for a fixed input order. The heuristic
// emits at most N-1 transfers for N participants with non-zero balance, and
// the transferred total equals the sum of the positive balances. All
// arithmetic is on integer minor units.
func Optimize(balances []models.UserBalance) []models.SuggestedSettlement {
	working := make([]models.UserBalance, 0, len(balances))
	for _, b := range balances {
		if b.NetBalance >= settleEpsilon || b.NetBalance <= -settleEpsilon {
			working = append(working, b)
		}
	}

	var suggestions []models.SuggestedSettlement

	for {
		creditor, debtor := -1, -1
		for i, b := range working {
			// Strict comparisons keep ties on the earliest participant.
			if b.NetBalance > 0 && (creditor == -1 || b.NetBalance > working[creditor].NetBalance) {
				creditor = i
			}
			if b.NetBalance < 0 && (debtor == -1 || b.NetBalance < working[debtor].NetBalance) {
				debtor = i
			}
		}

		// Selection requires a strictly positive creditor and strictly
		// negative debtor, so running out of either side ends the loop.
		if creditor == -1 || debtor == -1 {
			break
		}

		amount := working[creditor].NetBalance
		if owed := -working[debtor].NetBalance; owed < amount {
			amount = owed
		}

		if amount > 0 {
			suggestions = append(suggestions, models.SuggestedSettlement{
				FromUserID: working[debtor].UserID,
				ToUserID:   working[creditor].UserID,
				Amount:     amount,
				Currency:   working[creditor].Currency,
			})
		}

		working[creditor].NetBalance -= amount
		working[debtor].NetBalance += amount
	}

	return suggestions
}
