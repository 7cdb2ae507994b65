// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
)

var logger = log.WithContext("pkg", "api-utils")

// CallerHeader carries the address a mutating request acts as.
const CallerHeader = "X-Caller"

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// HTTPError create an error with http status code.
func HTTPError(cause error, status int) error {
	return &httpError{
		cause:  cause,
		status: status,
	}
}

// BadRequest convenience method to create http bad request error.
func BadRequest(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusBadRequest,
	}
}

// Forbidden convenience method to create http forbidden error.
func Forbidden(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusForbidden,
	}
}

// RevertBody is the response body of a reverted call.
type RevertBody struct {
	Kind   reverts.Kind `json:"kind"`
	Reason string       `json:"reason"`
}

// HandlerFunc like http.HandlerFunc, but it returns an error.
// Reverts are responded with 400 and a RevertBody, httpError with its own status,
// anything else with 500.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		var (
			he *httpError
			re *reverts.ErrRevert
		)
		switch {
		case errors.As(err, &he):
			if he.cause != nil {
				http.Error(w, he.cause.Error(), he.status)
			} else {
				w.WriteHeader(he.status)
			}
		case errors.As(err, &re):
			w.Header().Set("Content-Type", JSONContentType)
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(&RevertBody{re.Kind, re.Reason})
		default:
			logger.Debug("api request failed", "path", r.URL.Path, "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON parse a JSON object using strict mode.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// M shortcut for type map[string]any.
type M map[string]any

// Caller reads the acting address from the X-Caller header.
func Caller(req *http.Request) (altava.Address, error) {
	v := req.Header.Get(CallerHeader)
	if v == "" {
		return altava.Address{}, BadRequest(errors.New("missing " + CallerHeader + " header"))
	}
	addr, err := altava.ParseAddress(v)
	if err != nil {
		return altava.Address{}, BadRequest(errors.WithMessage(err, CallerHeader))
	}
	return addr, nil
}

// AddressVar parses the named path variable as an address.
func AddressVar(req *http.Request, name string) (altava.Address, error) {
	addr, err := altava.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return altava.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// Uint64Var parses the named path variable as a decimal uint64.
func Uint64Var(req *http.Request, name string) (uint64, error) {
	v, err := strconv.ParseUint(mux.Vars(req)[name], 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return v, nil
}

// Uint64Query parses the named query parameter, def if absent.
func Uint64Query(req *http.Request, name string, def uint64) (uint64, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return v, nil
}
