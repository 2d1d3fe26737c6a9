package httpapi

import (
	"context"
	"encoding/json"

	"github.com/mesh-intelligence/hobbyist/internal/api"
)

// opFunc runs one operation against the service with its decoded
// argument object.
type opFunc func(ctx context.Context, svc *api.Service, args map[string]json.RawMessage) (any, error)

type idArgs struct {
	ID string `json:"_id"`
}

// operations binds every query and mutation of api.Schema to the service.
var operations = map[string]opFunc{
	api.OpHobby: func(ctx context.Context, svc *api.Service, args map[string]json.RawMessage) (any, error) {
		var in idArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return svc.Hobby(ctx, in.ID)
	},
	api.OpHobbies: func(ctx context.Context, svc *api.Service, args map[string]json.RawMessage) (any, error) {
		var in struct {
			Filters *api.HobbyFilterInput `json:"filters"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return svc.Hobbies(ctx, in.Filters)
	},
	api.OpCreateHobby: func(ctx context.Context, svc *api.Service, args map[string]json.RawMessage) (any, error) {
		var in struct {
			Payload api.CreateHobbyInput `json:"payload"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return svc.CreateHobby(ctx, in.Payload)
	},
	api.OpUpdateHobby: func(ctx context.Context, svc *api.Service, args map[string]json.RawMessage) (any, error) {
		var in struct {
			Payload api.UpdateHobbyInput `json:"payload"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return svc.UpdateHobby(ctx, in.Payload)
	},
	api.OpDeleteHobby: func(ctx context.Context, svc *api.Service, args map[string]json.RawMessage) (any, error) {
		var in idArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return svc.DeleteHobby(ctx, in.ID)
	},
	api.OpPerson: func(ctx context.Context, svc *api.Service, args map[string]json.RawMessage) (any, error) {
		var in idArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return svc.Person(ctx, in.ID)
	},
	api.OpPersons: func(ctx context.Context, svc *api.Service, args map[string]json.RawMessage) (any, error) {
		var in struct {
			Filters *api.PersonFilterInput `json:"filters"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return svc.Persons(ctx, in.Filters)
	},
	api.OpCreatePerson: func(ctx context.Context, svc *api.Service, args map[string]json.RawMessage) (any, error) {
		var in struct {
			Payload api.CreatePersonInput `json:"payload"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return svc.CreatePerson(ctx, in.Payload)
	},
	api.OpUpdatePerson: func(ctx context.Context, svc *api.Service, args map[string]json.RawMessage) (any, error) {
		var in struct {
			Payload api.UpdatePersonInput `json:"payload"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return svc.UpdatePerson(ctx, in.Payload)
	},
	api.OpDeletePerson: func(ctx context.Context, svc *api.Service, args map[string]json.RawMessage) (any, error) {
		var in idArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return svc.DeletePerson(ctx, in.ID)
	},
}
