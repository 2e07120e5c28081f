// Package domain models the two static datasets served by the API and the
// metrics derived from them.
//
// # Data Sources
//
// Daily climate records come from the Delhi daily climate dataset, one row per
// observation day:
//
//	date,meantemp,humidity,wind_speed,meanpressure
//	2017-01-01,15.91,85.87,2.74,59.0
//
// Dates are ISO calendar dates (YYYY-MM-DD). Dates are not guaranteed unique.
//
// Rainfall normals come from the district-wise rainfall normal dataset for
// India: long-term average rainfall in millimetres per calendar month, plus
// the annual total, for each (state/UT, district) pair:
//
//	STATE_UT_NAME,DISTRICT,JAN,FEB,...,DEC,ANNUAL
//	KERALA,IDUKKI,13.4,34.9,...,42.9,3574.9
//
// State and district names can carry surrounding whitespace in the source
// file. They are trimmed before indexing, and query parameters are trimmed
// the same way before lookup. Matching is otherwise case-sensitive.
//
// # Month Codes
//
// Months are the twelve upper-case symbols JAN..DEC in calendar order, plus
// the literal ANNUAL for the annual total. A month range whose start comes
// after its end wraps across the year boundary:
//
//	NOV..FEB  →  NOV, DEC, JAN, FEB
//
// See [ResolveMonthRange].
//
// # Threshold Probability
//
// "Probability" here is a binary indicator, not a statistical estimate: a
// single month scores 100 when its normal meets or exceeds the threshold and
// 0 otherwise. Over a month range the aggregate probability is the share of
// months that meet the threshold, as a percentage rounded to two decimals.
package domain
