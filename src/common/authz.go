package common

import "ets/src/types"

// Operation names every state-reading or state-changing entry point gated by
// role. Ownership checks (owner-or-admin) happen inside the operation once the
// record is loaded; this table answers only "may this role call at all".
type Operation string

const (
	OpEventCreate    Operation = "event:create"
	OpEventList      Operation = "event:list"
	OpEventGet       Operation = "event:get"
	OpEventListMine  Operation = "event:list-mine"
	OpEventUpdate    Operation = "event:update"
	OpEventDelete    Operation = "event:delete"
	OpEventSetStatus Operation = "event:set-status"

	OpBookingCreate   Operation = "booking:create"
	OpBookingGet      Operation = "booking:get"
	OpBookingCancel   Operation = "booking:cancel"
	OpBookingListMine Operation = "booking:list-mine"

	OpUserList      Operation = "user:list"
	OpUserGet       Operation = "user:get"
	OpUserSetRole   Operation = "user:set-role"
	OpUserDelete    Operation = "user:delete"
	OpAnalyticsMine Operation = "analytics:mine"
)

var capabilities = map[Operation][]types.Role{
	OpEventCreate:    {types.ROLE_ORGANIZER},
	OpEventList:      {types.ROLE_GUEST, types.ROLE_STANDARD, types.ROLE_ORGANIZER, types.ROLE_ADMIN},
	OpEventGet:       {types.ROLE_GUEST, types.ROLE_STANDARD, types.ROLE_ORGANIZER, types.ROLE_ADMIN},
	OpEventListMine:  {types.ROLE_ORGANIZER},
	OpEventUpdate:    {types.ROLE_ORGANIZER, types.ROLE_ADMIN},
	OpEventDelete:    {types.ROLE_ORGANIZER, types.ROLE_ADMIN},
	OpEventSetStatus: {types.ROLE_ADMIN},

	OpBookingCreate:   {types.ROLE_STANDARD},
	OpBookingGet:      {types.ROLE_STANDARD},
	OpBookingCancel:   {types.ROLE_STANDARD},
	OpBookingListMine: {types.ROLE_STANDARD},

	OpUserList:      {types.ROLE_ADMIN},
	OpUserGet:       {types.ROLE_ADMIN},
	OpUserSetRole:   {types.ROLE_ADMIN},
	OpUserDelete:    {types.ROLE_ADMIN},
	OpAnalyticsMine: {types.ROLE_ORGANIZER},
}

func Allowed(op Operation, role types.Role) bool {
	allowed, ok := capabilities[op]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize is the front gate used by every operation: one table lookup per
// request instead of role-string comparisons scattered through handlers.
func Authorize(op Operation, role types.Role) error {
	if !role.Valid() {
		// Anonymous callers reach only the operations that admit the guest
		// role; the operation itself narrows what a guest can see.
		if Allowed(op, types.ROLE_GUEST) {
			return nil
		}
		return types.E(types.KindUnauthenticated, "unknown role")
	}
	if !Allowed(op, role) {
		return types.Ef(types.KindForbidden, "role %q may not perform %s", role, op)
	}
	return nil
}
