package services

// Services defined in this package:
// - AllotmentService: runs allotment passes, reports availability, lists
//   allotment records, applies fee-status updates from the payment
//   collaborator
//
// Services depend on the small store interfaces declared alongside them
// rather than on concrete repositories, so the commit semantics can be
// exercised in tests without a database.
