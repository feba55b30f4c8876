package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/schedule", handler.FullSchedule)
	mux.HandleFunc("GET /v1/schedule/weeks/{week}", handler.WeekGames)
	mux.HandleFunc("GET /v1/schedule/weeks/{week}/teams", handler.WeekTeams)
	mux.HandleFunc("GET /v1/pools", handler.ListPublicPools)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedPoolRoutes(mux, handler, verifier)
	registerAuthorizedEntryRoutes(mux, handler, verifier)
	registerAuthorizedPickRoutes(mux, handler, verifier)
	registerAuthorizedStatsRoutes(mux, handler, verifier)
}

func registerAuthorizedPoolRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/pools", RequireAuth(verifier, http.HandlerFunc(handler.CreatePool)))
	mux.Handle("GET /v1/pools/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPools)))
	mux.Handle("GET /v1/pools/{poolID}", RequireAuth(verifier, http.HandlerFunc(handler.GetPool)))
	mux.Handle("PUT /v1/pools/{poolID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePool)))
	mux.Handle("DELETE /v1/pools/{poolID}", RequireAuth(verifier, http.HandlerFunc(handler.DeletePool)))
}

func registerAuthorizedEntryRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/pools/{poolID}/entries", RequireAuth(verifier, http.HandlerFunc(handler.CreateEntry)))
	mux.Handle("GET /v1/pools/{poolID}/entries", RequireAuth(verifier, http.HandlerFunc(handler.ListPoolEntries)))
	mux.Handle("GET /v1/entries/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyEntries)))
	mux.Handle("GET /v1/entries/{entryID}", RequireAuth(verifier, http.HandlerFunc(handler.GetEntry)))
	mux.Handle("PUT /v1/entries/{entryID}", RequireAuth(verifier, http.HandlerFunc(handler.RenameEntry)))
	mux.Handle("DELETE /v1/entries/{entryID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteEntry)))
}

func registerAuthorizedPickRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/entries/{entryID}/picks", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPick)))
	mux.Handle("GET /v1/entries/{entryID}/picks", RequireAuth(verifier, http.HandlerFunc(handler.ListPicks)))
	mux.Handle("DELETE /v1/entries/{entryID}/picks/{week}", RequireAuth(verifier, http.HandlerFunc(handler.DeletePick)))
	mux.Handle("GET /v1/entries/{entryID}/status", RequireAuth(verifier, http.HandlerFunc(handler.GetEntryStatus)))
}

func registerAuthorizedStatsRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/pools/{poolID}/stats", RequireAuth(verifier, http.HandlerFunc(handler.GetPoolStats)))
	mux.Handle("GET /v1/pools/{poolID}/stats/weeks/{week}", RequireAuth(verifier, http.HandlerFunc(handler.GetWeekDistribution)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncResultsJob)))
}
