// Package authstate keeps client side authentication state in sync with an
// identity backend the caller plugs in through Callbacks.
//
// State:
//   - A Controller holds IsAuthenticated, User and IsLoading. Consumers read
//     snapshots with State or Subscribe to be notified synchronously after
//     every mutation. Nothing here persists the session, that belongs to the
//     collaborators.
//   - IsAuthenticated only changes from OnGetToken results (see CheckAuth) or
//     OnAuthStateChange notifications, never from UI code.
//
// Actions:
//   - SignUp and LogIn revalidate the token after the collaborator returns,
//     so backends that open a session as a side effect are picked up.
//   - LogOut clears local state once the collaborator succeeds.
//   - Collaborator errors from actions propagate unchanged. Errors raised
//     while revalidating in the background are absorbed and count as
//     unauthenticated.
//
// Lifecycle:
//   - Mount subscribes to OnAuthStateChange and every FocusSource, then runs
//     LoadUser. Each flip of IsAuthenticated reloads the user while mounted.
//     The function returned by Mount (or Close) stops all of it.
//   - Use WithController / MustFromContext, or Middleware for go-router
//     handlers, to hand the controller to consumers explicitly.
package authstate
