// Package tempres provides scoped acquisition of temporary files and
// directories with guaranteed release.
//
// A [Guard] creates uniquely named resources either under the project's own
// tmp/ directory (repository scope) or in the system temp area (system
// scope). The caller always declares the scope; repository scope requires a
// project root supplied through [WithRootResolver].
//
// # Basic Usage
//
//	guard := tempres.New(tempres.WithRootResolver(project.StaticRoot(root)))
//	defer guard.Close()
//
//	err := tempres.Do(ctx, guard, tempres.Request{
//		Kind:   tempres.KindFile,
//		Prefix: "task",
//		Scope:  tempres.ScopeRepository,
//	}, func(ctx context.Context, res *tempres.Resource) error {
//		return res.WriteFile([]byte("hello"))
//	})
//
// # Cleanup Guarantees
//
// [With], [Do] and [WithGroup] release on normal return, on error, on panic,
// on context cancellation and on the guard's trapped signals (SIGINT and
// SIGTERM by default), which cancel the context passed to the body. A body
// that ignores its context delays cleanup until it returns.
//
// SIGKILL and other untrappable terminations skip cleanup entirely. Leftovers
// keep the naming scheme <prefix>-<unix-nanos>-<random> and can be swept by
// age with [ParseName].
//
// Release never returns an error. Failures other than "already gone" are
// logged as a [CleanupWarning] and the resource is marked released anyway.
package tempres
