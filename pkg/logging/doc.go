// Package logging sets up the slog defaults shared by recipesd and the
// recipes CLI, and can copy warnings and errors into the database.
//
// Both binaries install a JSON handler on stderr at startup. Every record
// carries the binary name as "module" and its build version as "version":
//
//	logging.SetDefaultStructuredLogger("recipesd", version)
//
// The level comes from LOG_LEVEL (debug, info, warn or error; anything else
// means info). The CLI passes its --log-level flag instead:
//
//	logging.SetDefaultStructuredLoggerWithLevel("recipes", version, cmd.String("log-level"))
//
// At debug level records also carry their source location.
//
// A selector run logs one line when it finishes:
//
//	{"time":"2025-06-02T07:00:00.41Z","level":"INFO","msg":"selector run complete",
//	 "module":"recipesd","version":"v1.2.0","picked":["Tacos","Salad Bowl"],"reset":false}
//
// When the pool ran out or every remaining draw collided it also logs a
// warning:
//
//	{"time":"2025-06-02T07:00:00.40Z","level":"WARN","msg":"selector run incomplete",
//	 "module":"recipesd","version":"v1.2.0","picked":1,"requested":2,"attempts":3}
//
// # Persisted records
//
// PersistentHandler wraps another handler. It passes every record through
// and also hands records at or above a minimum level to a Sink as an Entry,
// with the attributes encoded as one JSON object. The store implements Sink
// and writes to the log_entries table. recipesd enables this from the
// persistLogLevel setting (default warn, "off" disables it):
//
//	h := logging.NewPersistentHandler(slog.Default().Handler(), db, slog.LevelWarn)
//	slog.SetDefault(slog.New(h))
//
// The warning above then becomes a row like:
//
//	level=WARN message="selector run incomplete"
//	attributes={"attempts":3,"picked":1,"requested":2}
//
// Sink writes ignore request cancellation. A failed write goes to stderr and
// does not affect the wrapped handler.
//
// NewLogLogger bridges APIs that still want a *log.Logger, such as
// http.Server.ErrorLog, onto the current default handler.
package logging
