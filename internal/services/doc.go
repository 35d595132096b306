// Package services holds helpers shared by the pipeline and its external
// integrations.
//
// Errors are tagged with a marker (validation, configuration, external
// service, i/o, pending) through Wrap so the pipeline can journal a run with
// the right status via FailureStatus. The llm subpackage talks to the chat
// completion API used for translation.
package services
