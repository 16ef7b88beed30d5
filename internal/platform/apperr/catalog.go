// Copyright (c) 2026 Vicinio. All rights reserved.

package apperr

import "net/http"

// # Wire Codes
//
// The numeric ranges are part of the public v2 contract and must never be
// renumbered:
//
//	1001-1099  signup
//	1101-1199  login / token
//	1201-1299  forgot password
//	1301-1399  users
//	1401-1499  communities
//	1501-1599  posts
//	2001-2099  transport
const (
	CodeWrongEmailFormat     = 1001
	CodeBadPasswordFormat    = 1002
	CodeFirstNameEmpty       = 1003
	CodeLastNameEmpty        = 1004
	CodeAccountAlreadyExists = 1005

	CodeWrongCredentials = 1101
	CodeWrongToken       = 1102
	CodeExpiredToken     = 1103

	CodeNoAccount = 1201

	CodeInvalidUserID    = 1301
	CodeUserDoesNotExist = 1302

	CodeInvalidCommunityID     = 1401
	CodeCommunityDoesNotExist  = 1402
	CodeCommunityAlreadyAdded  = 1403
	CodeNoCommunityYet         = 1404
	CodeUserNotJoinedCommunity = 1405
	CodeNotCurrentCommunity    = 1406

	CodeInvalidPostID             = 1501
	CodePostDoesNotExist          = 1502
	CodePostCannotBeViewed        = 1503
	CodePostDescriptionIsRequired = 1504
	CodePostOwnerUpdateOnly       = 1505

	CodePageNotFound = 2001
	CodeUnknownError = 2003
)

// # Signup Errors

func WrongEmailFormat() *AppError {
	return New(CodeWrongEmailFormat, "EMAIL SHOULD BE PROVIDED", http.StatusUnauthorized)
}

func BadPasswordFormat() *AppError {
	return New(CodeBadPasswordFormat, "PASSWORD SHOULD BE AT LEAST 6 CHARACTERS", http.StatusUnauthorized)
}

func FirstNameEmpty() *AppError {
	return New(CodeFirstNameEmpty, "FIRST NAME SHOULD NOT BE EMPTY", http.StatusUnauthorized)
}

func LastNameEmpty() *AppError {
	return New(CodeLastNameEmpty, "LAST NAME SHOULD NOT BE EMPTY", http.StatusUnauthorized)
}

func AccountAlreadyExists() *AppError {
	return New(CodeAccountAlreadyExists, "ACCOUNT ALREADY EXISTS", http.StatusUnauthorized)
}

// # Login / Token Errors

func WrongCredentials() *AppError {
	return New(CodeWrongCredentials, "USERNAME OR PASSWORD IS INCORRECT", http.StatusUnauthorized)
}

// WrongToken is the single client-visible outcome for every token failure:
// the token is missing, forged, malformed, or expired. Collapsing them is a
// security-hygiene decision — clients must not learn which check failed.
func WrongToken() *AppError {
	return New(CodeWrongToken, "TOKEN WAS WRONG", http.StatusUnauthorized)
}

// ExpiredToken exists for internal observability (logs distinguish expiry
// from forgery). It is never written to the wire; the middleware maps it to
// [WrongToken] before responding.
func ExpiredToken() *AppError {
	return New(CodeExpiredToken, "TOKEN WAS EXPIRED", http.StatusUnauthorized)
}

// # Forgot Password Errors

func NoAccount() *AppError {
	return New(CodeNoAccount, "ACCOUNT DOES NOT EXIST", http.StatusUnauthorized)
}

// # User Errors

func InvalidUserID() *AppError {
	return New(CodeInvalidUserID, "INVALID USER ID", http.StatusUnauthorized)
}

func UserDoesNotExist() *AppError {
	return New(CodeUserDoesNotExist, "USER DOES NOT EXIST", http.StatusUnauthorized)
}

// # Community Errors

func InvalidCommunityID() *AppError {
	return New(CodeInvalidCommunityID, "INVALID COMMUNITY ID", http.StatusUnauthorized)
}

func CommunityDoesNotExist() *AppError {
	return New(CodeCommunityDoesNotExist, "COMMUNITY DOES NOT EXIST", http.StatusUnauthorized)
}

// CommunityAlreadyAdded is part of the frozen wire contract but no route
// returns it anymore: re-joining a community is an idempotent no-op.
func CommunityAlreadyAdded() *AppError {
	return New(CodeCommunityAlreadyAdded, "COMMUNITY ALREADY ADDED", http.StatusUnauthorized)
}

func NoCommunityYet() *AppError {
	return New(CodeNoCommunityYet, "YOU DO NOT HAVE ANY COMMUNITY YET", http.StatusUnauthorized)
}

func UserNotJoinedCommunity() *AppError {
	return New(CodeUserNotJoinedCommunity, "USER IS NOT MEMBER OF THE COMMUNITY", http.StatusUnauthorized)
}

func NotCurrentCommunity() *AppError {
	return New(CodeNotCurrentCommunity, "USER SHOULD SWITCH TO ANOTHER COMMUNITY TO VIEW THE POSTS", http.StatusUnauthorized)
}

// # Post Errors

func InvalidPostID() *AppError {
	return New(CodeInvalidPostID, "INVALID POST ID", http.StatusUnauthorized)
}

func PostDoesNotExist() *AppError {
	return New(CodePostDoesNotExist, "POST DOES NOT EXIST", http.StatusUnauthorized)
}

func PostCannotBeViewed() *AppError {
	return New(CodePostCannotBeViewed, "POST CANNOT BE VIEWED", http.StatusUnauthorized)
}

func PostDescriptionIsRequired() *AppError {
	return New(CodePostDescriptionIsRequired, "POST DESCRIPTION IS REQUIRED", http.StatusUnauthorized)
}

func PostOwnerUpdateOnly() *AppError {
	return New(CodePostOwnerUpdateOnly, "ONLY THE OWNER OF THE POST CAN UPDATE IT", http.StatusUnauthorized)
}

// # Transport Errors

func PageNotFound() *AppError {
	return New(CodePageNotFound, "PAGE NOT FOUND", http.StatusNotFound)
}

func UnknownError() *AppError {
	return New(CodeUnknownError, "UNKNOWN ERROR", http.StatusInternalServerError)
}
