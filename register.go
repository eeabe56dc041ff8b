package tms_service

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pdcgo/shared/interfaces/authorization_iface"
	"github.com/pdcgo/shared/pkg/ware_cache"
	"github.com/pdcgo/tms_service/advance"
	"github.com/pdcgo/tms_service/payment"
	"github.com/pdcgo/tms_service/timeline"
	"github.com/pdcgo/tms_service/tms_model"
	"github.com/pdcgo/tms_service/transportable"
	"gorm.io/gorm"
)

type RegisterHandler func()

func NewRegister(
	db *gorm.DB,
	auth authorization_iface.Authorization,
	router *chi.Mux,
	cache ware_cache.Cache,
) RegisterHandler {
	tl := timeline.NewTimeline(db)

	hd := &apiHandler{
		db:       db,
		auth:     auth,
		timeline: tl,
		advSrv:   advance.NewAdvanceService(db, tl),
		paySrv:   payment.NewPaymentService(db, tl),
		transSrv: transportable.NewTransportableService(db),
	}

	return func() {
		router.Route("/api", func(r chi.Router) {
			r.Route("/advances", func(r chi.Router) {
				r.Post("/", hd.advanceCreate)
				r.Get("/", hd.advanceList)
				r.Get("/{id}", hd.advanceGet)
				r.Get("/{id}/timeline", hd.advanceTimeline)
				r.Post("/{id}/approve", hd.advanceApprove)
				r.Post("/{id}/confirm", hd.advanceConfirm)
				r.Post("/{id}/cancel", hd.advanceCancel)
				r.Post("/{id}/draft", hd.advanceReset)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", hd.paymentCreate)
				r.Post("/{id}/cancel", hd.paymentCancel)
			})

			r.Route("/transportables", func(r chi.Router) {
				r.Post("/", hd.transportableCreate)
				r.Post("/{id}/copy", hd.transportableCopy)
			})
		})
	}
}

type apiHandler struct {
	db       *gorm.DB
	auth     authorization_iface.Authorization
	timeline *timeline.Timeline

	advSrv   advance.AdvanceService
	paySrv   payment.PaymentService
	transSrv transportable.TransportableService
}

// authorize checks the permission and builds the acting context. The
// actor currency defaults to the company base currency.
func (h *apiHandler) authorize(
	req *http.Request,
	entity authorization_iface.Entity,
	domainID uint,
	actions ...authorization_iface.Action,
) (*advance.ActingContext, error) {
	identity := h.
		auth.
		AuthIdentityFromHeader(req.Header).
		HasPermission(authorization_iface.CheckPermissionGroup{
			entity: &authorization_iface.CheckPermission{
				DomainID: domainID,
				Actions:  actions,
			},
		})

	err := identity.Err()
	if err != nil {
		return nil, err
	}

	agent := identity.Identity()

	cur, err := tms_model.BaseCurrency(h.db)
	if err != nil {
		return nil, err
	}

	return &advance.ActingContext{
		UserID:     agent.GetUserID(),
		CurrencyID: cur.ID,
	}, nil
}

func (h *apiHandler) advanceCreate(w http.ResponseWriter, req *http.Request) {
	var pay advance.AdvanceCreatePayload
	err := json.NewDecoder(req.Body).Decode(&pay)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	actor, err := h.authorize(req, &tms_model.Advance{}, pay.OperatingUnitID, authorization_iface.Create)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	adv, err := h.advSrv.AdvanceCreate(req.Context(), actor, &pay)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, adv)
}

func (h *apiHandler) advanceList(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	pay := advance.AdvanceListPayload{
		OperatingUnitID: queryUint(q.Get("operating_unit_id")),
		DriverID:        queryUint(q.Get("driver_id")),
		TravelID:        queryUint(q.Get("travel_id")),
		State:           tms_model.AdvanceState(q.Get("state")),
		Limit:           int(queryUint(q.Get("limit"))),
		Offset:          int(queryUint(q.Get("offset"))),
	}

	_, err := h.authorize(req, &tms_model.Advance{}, pay.OperatingUnitID, authorization_iface.Read)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	items, err := h.advSrv.AdvanceList(req.Context(), &pay)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *apiHandler) advanceGet(w http.ResponseWriter, req *http.Request) {
	adv, err := h.advSrv.AdvanceGet(req.Context(), pathID(req))
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	_, err = h.authorize(req, &tms_model.Advance{}, adv.OperatingUnitID, authorization_iface.Read)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	writeJSON(w, http.StatusOK, adv)
}

func (h *apiHandler) advanceTimeline(w http.ResponseWriter, req *http.Request) {
	adv, err := h.advSrv.AdvanceGet(req.Context(), pathID(req))
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	_, err = h.authorize(req, &tms_model.Advance{}, adv.OperatingUnitID, authorization_iface.Read)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	notes, err := h.timeline.Notes(req.Context(), adv.RefID())
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

func (h *apiHandler) advanceTransition(
	transition func(req *http.Request, actor *advance.ActingContext, advanceID uint) (*tms_model.Advance, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		advanceID := pathID(req)

		adv, err := h.advSrv.AdvanceGet(req.Context(), advanceID)
		if err != nil {
			writeError(w, statusOf(err), err)
			return
		}

		actor, err := h.authorize(req, &tms_model.Advance{}, adv.OperatingUnitID, authorization_iface.Update)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err)
			return
		}

		adv, err = transition(req, actor, advanceID)
		if err != nil {
			writeError(w, statusOf(err), err)
			return
		}

		writeJSON(w, http.StatusOK, adv)
	}
}

func (h *apiHandler) advanceApprove(w http.ResponseWriter, req *http.Request) {
	h.advanceTransition(func(req *http.Request, actor *advance.ActingContext, advanceID uint) (*tms_model.Advance, error) {
		return h.advSrv.AdvanceApprove(req.Context(), actor, advanceID)
	})(w, req)
}

func (h *apiHandler) advanceConfirm(w http.ResponseWriter, req *http.Request) {
	h.advanceTransition(func(req *http.Request, actor *advance.ActingContext, advanceID uint) (*tms_model.Advance, error) {
		return h.advSrv.AdvanceConfirm(req.Context(), actor, advanceID)
	})(w, req)
}

func (h *apiHandler) advanceCancel(w http.ResponseWriter, req *http.Request) {
	h.advanceTransition(func(req *http.Request, actor *advance.ActingContext, advanceID uint) (*tms_model.Advance, error) {
		return h.advSrv.AdvanceCancel(req.Context(), actor, advanceID)
	})(w, req)
}

func (h *apiHandler) advanceReset(w http.ResponseWriter, req *http.Request) {
	h.advanceTransition(func(req *http.Request, actor *advance.ActingContext, advanceID uint) (*tms_model.Advance, error) {
		return h.advSrv.AdvanceResetToDraft(req.Context(), actor, advanceID)
	})(w, req)
}

func (h *apiHandler) paymentCreate(w http.ResponseWriter, req *http.Request) {
	var pay payment.PaymentCreatePayload
	err := json.NewDecoder(req.Body).Decode(&pay)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	adv, err := h.advSrv.AdvanceGet(req.Context(), pay.AdvanceID)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	actor, err := h.authorize(req, &tms_model.Payment{}, adv.OperatingUnitID, authorization_iface.Create)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	pm, err := h.paySrv.PaymentCreate(req.Context(), actor, &pay)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, pm)
}

func (h *apiHandler) paymentCancel(w http.ResponseWriter, req *http.Request) {
	var pm tms_model.Payment
	err := h.db.
		Model(&tms_model.Payment{}).
		Where("id = ?", pathID(req)).
		Find(&pm).
		Error

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	actor, err := h.authorize(req, &tms_model.Payment{}, pm.OperatingUnitID, authorization_iface.Update)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	res, err := h.paySrv.PaymentCancel(req.Context(), actor, pathID(req))
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *apiHandler) transportableCreate(w http.ResponseWriter, req *http.Request) {
	var pay transportable.TransportableCreatePayload
	err := json.NewDecoder(req.Body).Decode(&pay)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	_, err = h.authorize(req, &tms_model.Transportable{}, 0, authorization_iface.Create)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	item, err := h.transSrv.TransportableCreate(req.Context(), &pay)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *apiHandler) transportableCopy(w http.ResponseWriter, req *http.Request) {
	_, err := h.authorize(req, &tms_model.Transportable{}, 0, authorization_iface.Create)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	item, err := h.transSrv.TransportableCopy(req.Context(), pathID(req))
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func pathID(req *http.Request) uint {
	return queryUint(chi.URLParam(req, "id"))
}

func queryUint(raw string) uint {
	if raw == "" {
		return 0
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}

	return uint(n)
}

// statusOf maps the service error kinds onto http statuses.
func statusOf(err error) int {
	var verr *advance.ValidationError
	var cerr *advance.ConfigurationError
	var serr *advance.StateError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &cerr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &serr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
