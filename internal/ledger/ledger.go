// Package ledger contains the pure accounting calculations: balance
// summation, the average-contribution standing rule, and transfer
// validation. Functions here never touch storage; callers fetch the
// inputs and pass plain values.
package ledger

import (
	"sort"

	"github.com/homefin/hearth/internal/domain"
	"github.com/homefin/hearth/internal/models"
)

// Balance sums a user's signed ledger entries. An empty entry set is a
// zero balance, not an error. Transfer adjustments are ordinary signed
// entries, so they are included.
func Balance(entries []models.LedgerEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}

// ComputeStanding classifies a member against the home average.
//
// average = home_total / member_count (0 when the home has no members);
// a member is above average when their total >= average. The standing
// also reports how much the member would need to contribute to reach
// the average.
func ComputeStanding(userTotal, homeTotal float64, memberCount int) models.Standing {
	var average float64
	if memberCount > 0 {
		average = homeTotal / float64(memberCount)
	}

	toReach := average - userTotal
	if toReach < 0 {
		toReach = 0
	}

	return models.Standing{
		UserTotal:            userTotal,
		AverageContribution:  average,
		AmountToReachAverage: toReach,
		IsAboveAverage:       userTotal >= average,
		MemberCount:          memberCount,
		HomeTotal:            homeTotal,
	}
}

// ValidateTransfer applies the transfer rules in order, failing fast
// with a distinct error for each:
//
//  1. sender is not the recipient
//  2. both belong to the same, non-empty home
//  3. amount is strictly positive
//  4. sender is below average, recipient is above average (transfers
//     flow from under-contributors to over-contributors)
//  5. sender's total covers the amount
//
// Existence of both users is the caller's responsibility; this function
// only sees users that were already fetched.
func ValidateTransfer(sender, recipient *models.User, senderStanding, recipientStanding models.Standing, amount float64) error {
	if sender.Username == recipient.Username {
		return domain.ErrSelfTransfer
	}
	if sender.HomeID == "" || sender.HomeID != recipient.HomeID {
		return domain.ErrCrossHomeTransfer
	}
	if amount <= 0 {
		return domain.ErrNonPositiveAmount
	}
	if senderStanding.IsAboveAverage {
		return domain.ErrSenderAboveAverage
	}
	if !recipientStanding.IsAboveAverage {
		return domain.ErrRecipientBelowAverage
	}
	if senderStanding.UserTotal < amount {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// EligibleRecipients filters same-home members down to those who may
// receive a transfer: everyone except the sender whose total meets the
// home average, sorted by total contribution descending.
func EligibleRecipients(sender string, members []models.User, totals map[string]float64, memberCount int) []models.EligibleRecipient {
	var homeTotal float64
	for _, t := range totals {
		homeTotal += t
	}

	var average float64
	if memberCount > 0 {
		average = homeTotal / float64(memberCount)
	}

	var eligible []models.EligibleRecipient
	for _, m := range members {
		if m.Username == sender {
			continue
		}
		total := totals[m.Username]
		if total < average {
			continue
		}
		eligible = append(eligible, models.EligibleRecipient{
			Username:          m.Username,
			FullName:          m.FullName,
			TotalContribution: total,
			AboveAverageBy:    total - average,
		})
	}

	// Highest contributors first.
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].TotalContribution > eligible[j].TotalContribution
	})

	return eligible
}
