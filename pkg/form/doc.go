// Package form holds the registration form core: the field state, the
// sanitiser applied to every keystroke, the validation rule-set and the
// controller that gates submission on validity.
//
// Renderers never mutate FormState directly. They feed events into a
// Controller (Change, TogglePassword, Submit) and draw the View snapshot it
// returns. Validation is recomputed from scratch after each mutation, so a
// View's SubmitEnabled flag always equals Result.Valid.
package form
