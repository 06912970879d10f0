package app

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/movie-booking-web/internal/apiclient"
	"github.com/metinatakli/movie-booking-web/internal/domain"
)

const (
	MsgRoomCreated       = "Room added."
	MsgRoomCreateFailed  = "Error adding room"
	MsgRoomUpdated       = "Room updated."
	MsgRoomUpdateFailed  = "Error updating room"
	MsgRoomDeleteConfirm = "Delete room?"
	MsgRoomDeleted       = "Room deleted."
	MsgRoomDeleteFailed  = "Error deleting room"
	MsgRoomsUnavailable  = "The rooms could not be loaded."
)

const roomsPath = "/admin/rooms"

type roomsPage struct {
	Rooms     []domain.Room
	LoadError string
	EditID    string
	Form      domain.RoomPayload
	Confirm   *confirmModal
}

func (app *Application) ListRooms(w http.ResponseWriter, r *http.Request) {
	app.renderRooms(w, r, nil)
}

func (app *Application) ConfirmDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "roomId")

	app.renderRooms(w, r, &confirmModal{
		Message: MsgRoomDeleteConfirm,
		Action:  roomsPath + "/" + url.PathEscape(id) + "/delete",
		Cancel:  roomsPath,
	})
}

func (app *Application) renderRooms(w http.ResponseWriter, r *http.Request, confirm *confirmModal) {
	ctx := r.Context()

	page := roomsPage{Confirm: confirm}

	rooms, err := app.roomService.List(ctx)
	if err != nil {
		app.logError(r, err)
		page.LoadError = apiclient.ErrorMessage(err, MsgRoomsUnavailable)
	}
	page.Rooms = rooms

	if draft, ok := app.popDraft(ctx, roomsPath); ok {
		page.EditID = draft.EditID
		page.Form = roomPayloadFromValues(draft.Values)
	} else if editID := r.URL.Query().Get("edit"); editID != "" {
		for _, room := range rooms {
			if room.ID == editID {
				page.EditID = room.ID
				page.Form = room.Payload()
				break
			}
		}
	}

	data := app.newTemplateData(r)
	data.Flash = app.popFlash(ctx)
	data.Page = page

	app.render(w, r, http.StatusOK, pageRooms, data)
}

func (app *Application) CreateRoom(w http.ResponseWriter, r *http.Request) {
	_, err := app.roomService.Create(r.Context(), roomPayloadFromValues(r.PostForm))

	app.finishEdit(w, r, err, roomsPath, "", MsgRoomCreated, MsgRoomCreateFailed)
}

func (app *Application) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "roomId")

	_, err := app.roomService.Update(r.Context(), id, roomPayloadFromValues(r.PostForm))

	app.finishEdit(w, r, err, roomsPath, id, MsgRoomUpdated, MsgRoomUpdateFailed)
}

func (app *Application) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "roomId")

	err := app.roomService.Delete(r.Context(), id)

	app.flashOutcome(r, err, MsgRoomDeleted, MsgRoomDeleteFailed)
	redirect(w, r, roomsPath)
}

func roomPayloadFromValues(v url.Values) domain.RoomPayload {
	return domain.RoomPayload{
		Name:     trimmedValue(v, "name"),
		Capacity: atoiOrZero(v.Get("capacity")),
	}
}
