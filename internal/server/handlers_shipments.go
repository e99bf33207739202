package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/transcontinental/portal/internal/storage"
)

type createShipmentRequest struct {
	ClientEmail           string   `json:"clientEmail"`
	Containers20ft        int      `json:"containers20ft"`
	Containers40ft        int      `json:"containers40ft"`
	BillOfLadingFiles     []string `json:"billOfLadingFiles"`
	PackingListFile       *string  `json:"packingListFile"`
	CommercialInvoiceFile *string  `json:"commercialInvoiceFile"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleListShipments(w http.ResponseWriter, r *http.Request) {
	filter := storage.ShipmentFilter{OwnerEmail: r.URL.Query().Get("clientEmail")}

	shipments, err := s.storage.ListShipments(r.Context(), principal(r), filter)
	if err != nil {
		s.writeError(w, r, "listShipments", err)
		return
	}
	respondJSON(w, http.StatusOK, shipments)
}

func (s *Server) handleCreateShipment(w http.ResponseWriter, r *http.Request) {
	var req createShipmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, "createShipment", err)
		return
	}

	in := storage.CreateShipmentInput{
		OwnerEmail:     req.ClientEmail,
		Containers20ft: req.Containers20ft,
		Containers40ft: req.Containers40ft,
		Files: storage.FileRefs{
			BillOfLadingFiles:     req.BillOfLadingFiles,
			PackingListFile:       req.PackingListFile,
			CommercialInvoiceFile: req.CommercialInvoiceFile,
		},
	}

	shipment, err := s.storage.CreateShipment(r.Context(), principal(r), in)
	if err != nil {
		s.writeError(w, r, "createShipment", err)
		return
	}
	respondJSON(w, http.StatusCreated, shipment)
}

func (s *Server) handleShipmentSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.storage.ShipmentSummary(r.Context(), principal(r), r.URL.Query().Get("clientEmail"))
	if err != nil {
		s.writeError(w, r, "shipmentSummary", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handlePendingShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := s.storage.PendingShipments(r.Context(), principal(r))
	if err != nil {
		s.writeError(w, r, "pendingShipments", err)
		return
	}
	respondJSON(w, http.StatusOK, shipments)
}

func (s *Server) handleGetShipment(w http.ResponseWriter, r *http.Request) {
	shipment, err := s.storage.GetShipment(r.Context(), principal(r), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, "getShipment", err)
		return
	}
	respondJSON(w, http.StatusOK, shipment)
}

func (s *Server) handleUpdateShipmentStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, "updateShipmentStatus", err)
		return
	}

	id := mux.Vars(r)["id"]
	shipment, err := s.storage.UpdateShipmentStatus(r.Context(), principal(r), id, storage.Status(req.Status))
	if err != nil {
		s.writeError(w, r, "updateShipmentStatus", err)
		return
	}

	annotate(r, func(e *AuditLogEntry) {
		e.NewStatus = string(shipment.Status)
	})
	respondJSON(w, http.StatusOK, shipment)
}

func (s *Server) handleDeleteShipment(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.DeleteShipment(r.Context(), principal(r), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, "deleteShipment", err)
		return
	}
	respondMessage(w, http.StatusOK, "Shipment deleted successfully")
}
