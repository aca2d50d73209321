package handlers

import (
	"net/http"

	"github.com/lecturelens/lecturelens/internal/adapter"
	"github.com/lecturelens/lecturelens/internal/adapter/utils"
	"github.com/lecturelens/lecturelens/internal/config"
)

// GetLibraryHandler godoc
// @Summary      List library records
// @Description  Returns the caller's saved study records, newest first. Record contents are fetched per id.
// @Tags         Library
// @Produce      json
// @Success      200  {array}   api.LibraryEntry  "Saved records"
// @Failure      500  {object}  api.JobResponse   "Store error"
// @Router       /library [get]
func GetLibraryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	records, err := handlerInstance.service.LibraryStore.ListRecords(r.Context(), requestUserId(r))
	if err != nil {
		logRH.Error("Error listing library records", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Store error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToLibraryEntries(records))
}

// GetRecordHandler godoc
// @Summary      Get one library record
// @Description  Returns the full study packet of one saved record.
// @Tags         Library
// @Produce      json
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  api.RecordResponse  "The saved record"
// @Failure      404  {object}  api.JobResponse     "Record not found"
// @Router       /library/{id} [get]
func GetRecordHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	record, found := handlerInstance.service.LibraryStore.GetRecord(r.Context(), idString)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Record not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToRecordResponse(record))
}

// DeleteRecordHandler godoc
// @Summary      Delete a library record
// @Description  Removes a saved record and its chat retrieval index.
// @Tags         Library
// @Produce      json
// @Param        id   path      string  true  "Record ID"
// @Success      204  "Record deleted"
// @Failure      404  {object}  api.JobResponse  "Record not found"
// @Failure      500  {object}  api.JobResponse  "Store error"
// @Router       /library/{id} [delete]
func DeleteRecordHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	log := logRH.With("traceId", r.Context().Value(config.TRACE_ID_KEY))

	idString := utils.GetChiURLParam(r, "id")
	if _, found := handlerInstance.service.LibraryStore.GetRecord(r.Context(), idString); !found {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Record not found")
		return
	}

	if err := handlerInstance.service.LibraryStore.DeleteRecord(r.Context(), idString); err != nil {
		log.Error("Error deleting record", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, idString, "Store error")
		return
	}

	// Retrieval chunks go with the record, chat for this lecture is over.
	if handlerInstance.chatService != nil {
		if err := handlerInstance.chatService.RemoveLecture(r.Context(), idString); err != nil {
			log.Error("Error removing lecture chunks", "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
