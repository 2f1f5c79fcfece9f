// Package poker implements the domain logic for evaluating five-card poker
// hands: card parsing, hand classification and head-to-head comparison.
//
// # Core Types
//
// Card: A rank (2-14, ace high) and an opaque suit symbol.
//
// Hand: Five cards kept in ascending rank order.
//
// Category: One of the ten hand strength classes, from HighCard to RoyalFlush.
//
// Classification: A Category plus the tiebreak value used between hands of
// the same category.
//
// # Hand Evaluation
//
// Classify walks an ordered list of rules, strongest first, and returns the
// first one that matches. Rank and suit counts are computed once per hand and
// shared by all rules. Ace is always high, so A-2-3-4-5 is not a straight.
//
// Compare decides between two classifications by category and then by
// tiebreak. Player 1 must be strictly stronger to win: exact ties go to
// player 2, there is no split pot.
package poker
