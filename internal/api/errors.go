package api

import (
	"errors"
	"fmt"
	"strings"
)

const (
	msgRejectedDefault = "入力内容が正しくありません。"
	msgServer          = "サーバーで問題が発生しました。"
	msgTransport       = "サーバーとの通信でエラーが発生しました"
)

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RejectedError is a 4xx response. Detail is the server's explanation (content moderation,
// validation) and is safe to show to the user as-is.
type RejectedError struct {
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("rejected (%d)", e.Status)
	}
	return fmt.Sprintf("rejected (%d): %s", e.Status, e.Detail)
}

// ServerError is any other non-2xx response, or a 2xx whose body could not be decoded.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d)", e.Status)
}

// ResultError is a 2xx response whose body reports {"error": "..."}.
type ResultError struct {
	Message string
}

func (e *ResultError) Error() string { return e.Message }

// UserMessage maps an error returned by Client to the text shown to users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		rej *RejectedError
		srv *ServerError
		res *ResultError
		tr  *TransportError
	)
	switch {
	case errors.As(err, &rej):
		if d := strings.TrimSpace(rej.Detail); d != "" {
			return d
		}
		return msgRejectedDefault
	case errors.As(err, &res):
		if m := strings.TrimSpace(res.Message); m != "" {
			return m
		}
		return msgServer
	case errors.As(err, &srv):
		return msgServer
	case errors.As(err, &tr):
		return msgTransport
	default:
		return err.Error()
	}
}

// IsTransport reports whether err is a connectivity failure.
func IsTransport(err error) bool {
	var tr *TransportError
	return errors.As(err, &tr)
}
