package article

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"news-agency/internal/domain/entity"
	hauth "news-agency/internal/handler/http/auth"
	"news-agency/internal/handler/http/respond"
	"news-agency/internal/observability/logging"
	"news-agency/internal/observability/metrics"
	artUC "news-agency/internal/usecase/article"
)

// Read actions selected by the "action" query parameter.
const (
	ActionGet     = "get"
	ActionGetAll  = "get_all"
	ActionFilters = "filters"
	ActionSearch  = "search"
	ActionStats   = "stats"
)

// Mutation actions carried in the request body.
const (
	ActionCreate    = "create"
	ActionUpdate    = "update"
	ActionSetStatus = "set_status"
	ActionDelete    = "delete"
)

// Handler serves every method of /articles.
type Handler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// Register mounts the handler on r at /articles. mws wrap only this route,
// so the admin guard stays off the probes and docs.
func Register(r chi.Router, h Handler, mws ...func(http.Handler) http.Handler) {
	r.With(mws...).Handle("/articles", h)
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.read(w, r)
	case http.MethodPost:
		h.post(w, r)
	case http.MethodPut:
		h.put(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	case http.MethodOptions:
		// CORS middleware normally answers first
		w.WriteHeader(http.StatusOK)
	default:
		respond.Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// read godoc
// @Summary      List, filter, search or count articles
// @Description  action=get (default) lists published articles newest first with the first three featured.
// @Description  action=get_all lists every status (admin). action=filters returns distinct regions and languages.
// @Description  action=search matches q against title and content (admin). action=stats counts by status (admin).
// @Tags         articles
// @Produce      json
// @Param        action    query string false "Read action" Enums(get, get_all, filters, search, stats) default(get)
// @Param        region    query string false "get_all: exact region"
// @Param        language  query string false "get_all: exact language"
// @Param        status    query string false "get_all: status" Enums(draft, published, pending, archived)
// @Param        q         query string false "search: term"
// @Success      200 {object} ListResponse[PublicDTO] "action=get. get_all and search return ListResponse[AdminDTO], filters FiltersResponse, stats StatsResponse"
// @Failure      400 {object} respond.Envelope
// @Failure      401 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Security     BearerAuth
// @Router       /articles [get]
func (h Handler) read(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch q.Get("action") {
	case ActionGetAll:
		articles, err := h.Svc.ListAll(r.Context(), artUC.ListFilter{
			Region:   q.Get("region"),
			Language: q.Get("language"),
			Status:   q.Get("status"),
		})
		if err != nil {
			h.fail(w, r, err, "Failed to fetch articles")
			return
		}
		respond.JSON(w, http.StatusOK, ListResponse[AdminDTO]{Success: true, Articles: toAdminDTOs(articles)})

	case ActionFilters:
		opts, err := h.Svc.FilterValues(r.Context())
		if err != nil {
			h.fail(w, r, err, "Failed to fetch filter options")
			return
		}
		respond.JSON(w, http.StatusOK, FiltersResponse{Success: true, Regions: opts.Regions, Languages: opts.Languages})

	case ActionSearch:
		articles, err := h.Svc.Search(r.Context(), q.Get("q"))
		if err != nil {
			h.fail(w, r, err, "Failed to fetch articles")
			return
		}
		respond.JSON(w, http.StatusOK, ListResponse[AdminDTO]{Success: true, Articles: toAdminDTOs(articles)})

	case ActionStats:
		stats, err := h.Svc.Stats(r.Context())
		if err != nil {
			h.fail(w, r, err, "Failed to fetch article statistics")
			return
		}
		respond.JSON(w, http.StatusOK, StatsResponse{Success: true, Stats: toStatsDTO(stats)})

	default:
		// 未知の action は公開一覧にフォールバック
		published, err := h.Svc.ListPublished(r.Context())
		if err != nil {
			h.fail(w, r, err, "Failed to fetch articles")
			return
		}
		dtos := make([]PublicDTO, 0, len(published))
		for _, p := range published {
			dtos = append(dtos, toPublicDTO(p))
		}
		respond.JSON(w, http.StatusOK, ListResponse[PublicDTO]{Success: true, Articles: dtos})
	}
}

// post godoc
// @Summary      Create an article
// @Description  Stores a new published article. title, content, region, language and date are required.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        article body MutationRequest true "action=create and the article fields"
// @Success      200 {object} CreatedResponse
// @Failure      400 {object} respond.Envelope
// @Failure      401 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Security     BearerAuth
// @Router       /articles [post]
func (h Handler) post(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMutation(r.Body)
	if !ok || req.Action != ActionCreate {
		respond.Fail(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	art, err := h.Svc.Create(r.Context(), req.createInput())
	metrics.RecordMutation(ActionCreate, err)
	if err != nil {
		h.fail(w, r, err, "Failed to create article")
		return
	}

	h.auditLog(r).Info("article created",
		slog.Int64("id", art.ID),
		slog.String("region", art.Region),
		slog.String("language", art.Language))
	respond.JSON(w, http.StatusOK, CreatedResponse{
		Success: true,
		Message: "Article created successfully",
		ID:      art.ID,
	})
}

// put godoc
// @Summary      Update an article or change its status
// @Description  action=update replaces the editable fields. action=set_status moves the article to draft, published, pending or archived.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        article body MutationRequest true "action=update with id and fields, or action=set_status with id and status"
// @Success      200 {object} respond.Envelope
// @Failure      400 {object} respond.Envelope
// @Failure      401 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Security     BearerAuth
// @Router       /articles [put]
func (h Handler) put(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMutation(r.Body)
	if !ok {
		respond.Fail(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	switch req.Action {
	case ActionUpdate:
		err := h.Svc.Update(r.Context(), artUC.UpdateInput{ID: int64(req.ID), CreateInput: req.createInput()})
		metrics.RecordMutation(ActionUpdate, err)
		if err != nil {
			if errors.Is(err, artUC.ErrArticleNotFound) {
				respond.Fail(w, http.StatusBadRequest, "Article not found or no changes made")
				return
			}
			h.fail(w, r, err, "Failed to update article")
			return
		}
		h.acknowledge(w, r, int64(req.ID), "Article updated successfully")

	case ActionSetStatus:
		err := h.Svc.SetStatus(r.Context(), int64(req.ID), req.Status)
		metrics.RecordMutation(ActionSetStatus, err)
		if err != nil {
			h.fail(w, r, err, "Failed to update article")
			return
		}
		h.acknowledge(w, r, int64(req.ID), "Article status updated successfully")

	default:
		respond.Fail(w, http.StatusBadRequest, "Invalid request data")
	}
}

// delete godoc
// @Summary      Delete an article
// @Description  Removes the article permanently.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        article body MutationRequest true "action=delete and id"
// @Success      200 {object} respond.Envelope
// @Failure      400 {object} respond.Envelope
// @Failure      401 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Security     BearerAuth
// @Router       /articles [delete]
func (h Handler) delete(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMutation(r.Body)
	if !ok || req.Action != ActionDelete {
		respond.Fail(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	err := h.Svc.Delete(r.Context(), int64(req.ID))
	metrics.RecordMutation(ActionDelete, err)
	if err != nil {
		h.fail(w, r, err, "Failed to delete article")
		return
	}
	h.acknowledge(w, r, int64(req.ID), "Article deleted successfully")
}

func (h Handler) acknowledge(w http.ResponseWriter, r *http.Request, id int64, msg string) {
	h.auditLog(r).Info(msg, slog.Int64("id", id))
	respond.JSON(w, http.StatusOK, respond.Envelope{Success: true, Message: msg})
}

// auditLog tags mutation logs with the admin who made them. Without the
// auth guard there is no user and the attribute is left out.
func (h Handler) auditLog(r *http.Request) *slog.Logger {
	log := logging.WithRequestID(r.Context(), h.Logger)
	if user := hauth.UserFromContext(r.Context()); user != "" {
		log = log.With(slog.String("user", user))
	}
	return log
}

// fail maps a use case error to the envelope. Client mistakes are 400 with
// their own message. Anything else is a storage failure reported as 500
// with the fixed storageMsg.
func (h Handler) fail(w http.ResponseWriter, r *http.Request, err error, storageMsg string) {
	var vErr *entity.ValidationError
	switch {
	case errors.Is(err, artUC.ErrRequiredFields):
		respond.Fail(w, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, artUC.ErrInvalidArticleID):
		respond.Fail(w, http.StatusBadRequest, "Article ID is required")
	case errors.Is(err, artUC.ErrArticleNotFound):
		respond.Fail(w, http.StatusBadRequest, "Article not found")
	case errors.As(err, &vErr):
		respond.Fail(w, http.StatusBadRequest, vErr.Message)
	default:
		logging.WithRequestID(r.Context(), h.Logger).Error("article request failed",
			slog.String("method", r.Method),
			slog.String("action", r.URL.Query().Get("action")),
			slog.String("error", respond.SanitizeError(err)))
		respond.Fail(w, http.StatusInternalServerError, storageMsg)
	}
}
