/*
Package types defines the data structures shared by the editor, the
transport and the stores.

  - HttpRequest: the request built from the Request pane text
  - RequestResult: the transport's answer (or its error)
  - Profile, OAuthConfig: per-environment base URL, headers and transport settings
  - Session: the active profile persisted between runs
  - HistoryEntry: one executed request as stored in sqlite
*/
package types
