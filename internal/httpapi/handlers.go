package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/hobbyist/internal/api"
	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// maxBodyBytes bounds a request body.
const maxBodyBytes = 1 << 20

var (
	errBadRequest       = errors.New("bad request")
	errUnknownOperation = errors.New("unknown operation")
)

// NewHandler builds the router: POST /api/{operation} for every query and
// mutation in api.Schema, plus the schema and health endpoints, wrapped in
// the request id, logging and recovery middleware.
func NewHandler(svc *api.Service, log zerolog.Logger) http.Handler {
	handlers := make(map[string]http.Handler, len(operations))
	for _, op := range api.Schema() {
		if op.Kind == api.KindField {
			continue
		}
		fn, ok := operations[op.Name]
		if !ok {
			panic(fmt.Sprintf("httpapi: no handler for operation %q", op.Name))
		}
		handlers[op.Name] = handleOperation(svc, op, fn)
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/schema", handleSchema).Methods(http.MethodGet)
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/{operation}", func(w http.ResponseWriter, req *http.Request) {
		op, ok := api.Lookup(mux.Vars(req)["operation"])
		if !ok {
			respondError(w, req, http.StatusNotFound, errUnknownOperation.Error())
			return
		}
		handlers[op.Name].ServeHTTP(w, req)
	}).Methods(http.MethodPost)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, errUnknownOperation.Error())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "method not allowed")
	})

	return Wrap(log, r)
}

func handleOperation(svc *api.Service, op api.Operation, fn opFunc) http.HandlerFunc {
	resolvesPerson := op.ReturnsType(api.TypePerson)
	allowed := append([]api.Arg(nil), op.Args...)
	if resolvesPerson {
		for _, f := range api.FieldsOf(api.TypePerson) {
			allowed = append(allowed, f.Args...)
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		args, err := readArgs(r)
		if err != nil {
			respondFailure(w, r, err)
			return
		}

		if err := checkArgs(args, allowed); err != nil {
			respondFailure(w, r, err)
			return
		}

		var populate bool
		if resolvesPerson {
			if raw, ok := args[api.ArgPopulate]; ok {
				if err := json.Unmarshal(raw, &populate); err != nil {
					respondFailure(w, r, fmt.Errorf("%w: populate: %v", errBadRequest, err))
					return
				}
			}
		}

		ctx := r.Context()
		result, err := fn(ctx, svc, args)
		if err != nil {
			respondFailure(w, r, err)
			return
		}

		switch v := result.(type) {
		case *types.Person:
			result, err = svc.View(ctx, v, populate)
		case []*types.Person:
			result, err = svc.Views(ctx, v, populate)
		}
		if err != nil {
			respondFailure(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"data": result})
	}
}

func handleSchema(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"data": api.Schema()})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readArgs decodes the body as a JSON object. An empty body means no
// arguments.
func readArgs(r *http.Request) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", errBadRequest, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: body too large", errBadRequest)
	}
	args := map[string]json.RawMessage{}
	if len(body) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(body, &args); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	if args == nil {
		args = map[string]json.RawMessage{}
	}
	return args, nil
}

// checkArgs rejects unknown arguments and missing required ones.
func checkArgs(args map[string]json.RawMessage, allowed []api.Arg) error {
	known := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		known[a.Name] = true
		raw, ok := args[a.Name]
		if a.Required && (!ok || string(raw) == "null") {
			return fmt.Errorf("%w: missing argument %q", errBadRequest, a.Name)
		}
	}
	for name := range args {
		if !known[name] {
			return fmt.Errorf("%w: unknown argument %q", errBadRequest, name)
		}
	}
	return nil
}

// decodeArgs re-encodes the argument object into the operation's typed
// argument struct.
func decodeArgs(args map[string]json.RawMessage, v any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidIdentifier), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	respondError(w, r, statusFor(err), err.Error())
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	body := map[string]string{"error": message}
	if id, ok := RequestIDFromContext(r.Context()); ok {
		body["request_id"] = id
	}
	respondJSON(w, status, body)
}
