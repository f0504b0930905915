// PixelHive - account lifecycle for a multi-tenant media platform
// Copyright (C) 2026 PixelHive contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package router

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pixelhive/pixelhive-go/pkg/errors"
	"github.com/pixelhive/pixelhive-go/pkg/httpUtils"
	accountManager "github.com/pixelhive/pixelhive-go/pkg/managers/account"
	"github.com/pixelhive/pixelhive-go/pkg/models/account"
	"github.com/pixelhive/pixelhive-go/pkg/sharedTypes"
)

// New builds the HTTP surface. Callers are identified by the X-Account-Id
// header, session handling is left to the gateway in front of this service.
func New(am accountManager.Manager) http.Handler {
	h := &httpController{am: am}

	r := mux.NewRouter()
	r.HandleFunc("/status", h.status).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/self", h.getSelf).Methods(http.MethodGet)
	api.HandleFunc("/accounts", h.listAccounts).Methods(http.MethodGet)
	api.HandleFunc("/accounts", h.createAccount).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{accountId}", h.getAccount).
		Methods(http.MethodGet)
	api.HandleFunc("/accounts/{accountId}", h.updateAccount).
		Methods(http.MethodPut)
	api.HandleFunc("/accounts/{accountId}", h.deleteAccount).
		Methods(http.MethodDelete)
	api.HandleFunc("/accounts/{accountId}/restore", h.restoreAccount).
		Methods(http.MethodPost)
	api.HandleFunc("/accounts/{accountId}/usage", h.accountUsage).
		Methods(http.MethodGet)
	api.HandleFunc("/accounts/{accountId}/profile-image", h.getProfileImage).
		Methods(http.MethodGet)
	api.HandleFunc("/accounts/{accountId}/profile-image", h.setProfileImage).
		Methods(http.MethodPut)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/deletion/sweep", h.sweep).Methods(http.MethodPost)
	admin.HandleFunc("/deletion/{accountId}", h.enqueueDeletion).
		Methods(http.MethodPost)
	return r
}

type httpController struct {
	am accountManager.Manager
}

func (h *httpController) status(w http.ResponseWriter, _ *http.Request) {
	httpUtils.RespondPlain(w, http.StatusOK, "pixelhive is alive (go)\n")
}

func getAccountId(r *http.Request) (sharedTypes.UUID, error) {
	id, err := sharedTypes.ParseUUID(mux.Vars(r)["accountId"])
	if err != nil {
		return sharedTypes.UUID{}, &errors.ValidationError{
			Msg: "invalid account id",
		}
	}
	return id, nil
}

// getActor resolves the calling account. A missing or unknown header yields
// a nil actor, authorization checks downstream reject it.
func (h *httpController) getActor(r *http.Request) *account.Account {
	raw := r.Header.Get("X-Account-Id")
	if raw == "" {
		return nil
	}
	id, err := sharedTypes.ParseUUID(raw)
	if err != nil {
		return nil
	}
	actor, err := h.am.GetSelf(r.Context(), id)
	if err != nil {
		return nil
	}
	return actor
}

func (h *httpController) getSelf(w http.ResponseWriter, r *http.Request) {
	actor := h.getActor(r)
	if actor == nil {
		httpUtils.RespondErr(w, r, &errors.NotAuthorizedError{})
		return
	}
	httpUtils.Respond(w, r, http.StatusOK, actor, nil)
}

func (h *httpController) listAccounts(w http.ResponseWriter, r *http.Request) {
	includeSoftDeleted, _ := strconv.ParseBool(
		r.URL.Query().Get("include_deleted"),
	)
	accounts, err := h.am.ListAccounts(
		r.Context(), h.getActor(r), includeSoftDeleted,
	)
	httpUtils.Respond(w, r, http.StatusOK, accounts, err)
}

func (h *httpController) createAccount(w http.ResponseWriter, r *http.Request) {
	request := &accountManager.CreateAccountRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		httpUtils.RespondErr(w, r, &errors.ValidationError{
			Msg: "invalid request body",
		})
		return
	}
	a, err := h.am.CreateAccount(r.Context(), h.getActor(r), request)
	httpUtils.Respond(w, r, http.StatusCreated, a, err)
}

func (h *httpController) getAccount(w http.ResponseWriter, r *http.Request) {
	accountId, err := getAccountId(r)
	if err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	a, err := h.am.GetAccount(r.Context(), h.getActor(r), accountId)
	httpUtils.Respond(w, r, http.StatusOK, a, err)
}

func (h *httpController) updateAccount(w http.ResponseWriter, r *http.Request) {
	accountId, err := getAccountId(r)
	if err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	request := &accountManager.UpdateAccountRequest{}
	if err = json.NewDecoder(r.Body).Decode(request); err != nil {
		httpUtils.RespondErr(w, r, &errors.ValidationError{
			Msg: "invalid request body",
		})
		return
	}
	err = h.am.UpdateAccount(r.Context(), h.getActor(r), accountId, request)
	httpUtils.Respond(w, r, http.StatusNoContent, nil, err)
}

func (h *httpController) deleteAccount(w http.ResponseWriter, r *http.Request) {
	accountId, err := getAccountId(r)
	if err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	_, err = h.am.DeleteAccount(r.Context(), h.getActor(r), accountId)
	httpUtils.Respond(w, r, http.StatusNoContent, nil, err)
}

func (h *httpController) restoreAccount(w http.ResponseWriter, r *http.Request) {
	accountId, err := getAccountId(r)
	if err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	err = h.am.RestoreAccount(r.Context(), h.getActor(r), accountId)
	httpUtils.Respond(w, r, http.StatusNoContent, nil, err)
}

func (h *httpController) accountUsage(w http.ResponseWriter, r *http.Request) {
	accountId, err := getAccountId(r)
	if err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	size, err := h.am.AccountUsage(r.Context(), h.getActor(r), accountId)
	httpUtils.Respond(w, r, http.StatusOK, map[string]int64{
		"library_bytes": size,
	}, err)
}

func (h *httpController) getProfileImage(w http.ResponseWriter, r *http.Request) {
	accountId, err := getAccountId(r)
	if err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	size, contentType, body, err := h.am.GetProfileImage(r.Context(), accountId)
	if err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	defer func() { _ = body.Close() }()
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}

func (h *httpController) setProfileImage(w http.ResponseWriter, r *http.Request) {
	accountId, err := getAccountId(r)
	if err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	err = h.am.SetProfileImage(
		r.Context(), h.getActor(r), accountId,
		r.ContentLength, r.Header.Get("Content-Type"), r.Body,
	)
	httpUtils.Respond(w, r, http.StatusNoContent, nil, err)
}

func (h *httpController) checkIsAdmin(r *http.Request) error {
	actor := h.getActor(r)
	if actor == nil || !actor.IsAdmin {
		return &errors.NotAuthorizedError{}
	}
	return nil
}

func (h *httpController) sweep(w http.ResponseWriter, r *http.Request) {
	if err := h.checkIsAdmin(r); err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	err := h.am.SweepExpired(r.Context())
	httpUtils.Respond(w, r, http.StatusNoContent, nil, err)
}

func (h *httpController) enqueueDeletion(w http.ResponseWriter, r *http.Request) {
	if err := h.checkIsAdmin(r); err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	accountId, err := getAccountId(r)
	if err != nil {
		httpUtils.RespondErr(w, r, err)
		return
	}
	err = h.am.EnqueueDeletion(r.Context(), accountId)
	httpUtils.Respond(w, r, http.StatusNoContent, nil, err)
}
