package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/transcontinental/portal/internal/storage"
)

type updateClientRequest struct {
	ID string `json:"id"`
	storage.ClientUpdateInput
}

func (s *Server) handleCountClients(w http.ResponseWriter, r *http.Request) {
	n, err := s.storage.CountClients(r.Context(), principal(r))
	if err != nil {
		s.writeError(w, r, "countClients", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.storage.ListClients(r.Context(), principal(r))
	if err != nil {
		s.writeError(w, r, "listClients", err)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	var req updateClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, "updateClient", err)
		return
	}

	client, err := s.storage.UpdateClient(r.Context(), principal(r), req.ID, req.ClientUpdateInput)
	if err != nil {
		s.writeError(w, r, "updateClient", err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.DeleteClient(r.Context(), principal(r), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, "deleteClient", err)
		return
	}
	respondMessage(w, http.StatusOK, "Client deleted successfully")
}

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := s.storage.ListAdmins(r.Context(), principal(r))
	if err != nil {
		s.writeError(w, r, "listAdmins", err)
		return
	}
	respondJSON(w, http.StatusOK, admins)
}

func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var in storage.AdminInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, "createAdmin", err)
		return
	}

	admin, err := s.storage.CreateAdmin(r.Context(), principal(r), in)
	if err != nil {
		s.writeError(w, r, "createAdmin", err)
		return
	}
	respondJSON(w, http.StatusCreated, admin)
}

func (s *Server) handleUpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var in storage.AdminInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, "updateAdmin", err)
		return
	}

	admin, err := s.storage.UpdateAdmin(r.Context(), principal(r), mux.Vars(r)["id"], in)
	if err != nil {
		s.writeError(w, r, "updateAdmin", err)
		return
	}
	respondJSON(w, http.StatusOK, admin)
}

func (s *Server) handleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.DeleteAdmin(r.Context(), principal(r), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, "deleteAdmin", err)
		return
	}
	respondMessage(w, http.StatusOK, "Admin deleted successfully")
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := s.feed.Recent(r.Context(), principal(r))
	if err != nil {
		s.writeError(w, r, "activities", err)
		return
	}
	respondJSON(w, http.StatusOK, activities)
}
