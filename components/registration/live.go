package registration

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/metrics"
)

// Live message types sent by the browser runtime.
const (
	MessageChange = "change"
	MessageToggle = "toggle"
	MessageSubmit = "submit"
)

// LiveMessage is one client event.
type LiveMessage struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// LiveView is the server reply to every message, and the first frame sent
// after the upgrade.
type LiveView struct {
	Errors        map[string]string `json:"errors"`
	Valid         bool              `json:"valid"`
	SubmitEnabled bool              `json:"submitEnabled"`
	ShowPassword  bool              `json:"showPassword"`
	Phase         form.Phase        `json:"phase"`
	Summary       *form.Summary     `json:"summary,omitempty"`
	Error         string            `json:"error,omitempty"`
}

func newLiveView(view form.View) LiveView {
	errs := make(map[string]string, len(view.Result.Errors))
	for field, msg := range view.Result.Errors {
		errs[string(field)] = msg
	}
	return LiveView{
		Errors:        errs,
		Valid:         view.Result.Valid,
		SubmitEnabled: view.SubmitEnabled,
		ShowPassword:  view.ShowPassword,
		Phase:         view.Phase,
		Summary:       view.Summary,
	}
}

// LiveHandler upgrades to a websocket and drives one controller per
// connection. Messages are processed strictly in arrival order.
func LiveHandler(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns:  opts.OriginPatterns,
			CompressionMode: websocket.CompressionDisabled,
		})
		if err != nil {
			opts.Logger.Warn("registration: websocket upgrade failed", "err", err)
			return
		}
		defer conn.CloseNow()
		conn.SetReadLimit(opts.ReadLimit)

		opts.Metrics.LiveSessions(1)
		defer opts.Metrics.LiveSessions(-1)

		err = serveLive(r.Context(), conn, opts)
		switch {
		case err == nil:
			conn.Close(websocket.StatusNormalClosure, "")
		case websocket.CloseStatus(err) == websocket.StatusNormalClosure,
			websocket.CloseStatus(err) == websocket.StatusGoingAway,
			errors.Is(err, context.Canceled):
		default:
			opts.Logger.Debug("registration: live session ended", "err", err)
			conn.Close(websocket.StatusInternalError, "")
		}
	})
}

func serveLive(ctx context.Context, conn *websocket.Conn, opts Options) error {
	controller := form.NewController(form.WithListener(metrics.Listener(opts.Metrics)))
	if err := wsjson.Write(ctx, conn, newLiveView(controller.View())); err != nil {
		return err
	}

	for {
		var msg LiveMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return err
		}
		handleErr := handleLive(controller, msg, opts)
		reply := newLiveView(controller.View())
		if handleErr != nil {
			reply.Error = handleErr.Error()
		}
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			return err
		}
	}
}

func handleLive(controller *form.Controller, msg LiveMessage, opts Options) error {
	switch msg.Type {
	case MessageChange:
		field, err := form.ParseField(msg.Field)
		if err != nil {
			return err
		}
		return controller.Change(field, msg.Value)
	case MessageToggle:
		controller.TogglePassword()
		return nil
	case MessageSubmit:
		if summary, ok := controller.Submit(); ok {
			opts.Logger.Info("registration submitted",
				"name", logging.RedactName(summary.Name),
				"email", logging.RedactEmail(summary.Email),
				"via", "live",
			)
		}
		return nil
	default:
		return errors.New("registration: unknown message type " + msg.Type)
	}
}
