// Package dome is an interactive spherical tile gallery for [Ebitengine].
//
// Square content tiles are laid out on the inside of a sphere that the user
// rotates by dragging. Clicking a tile (or pressing and holding it on a
// touch-primary device) lifts it into a modal overlay that shows the full
// content, either a static image or an embedded interactive frame.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	g := dome.NewGallery(dome.DefaultConfig(), []dome.ContentItem{
//		{PreviewRef: "a.png", AltText: "First"},
//		{PreviewRef: "b.png", FullRef: "b-large.png", AltText: "Second"},
//	})
//	g.SetImageSource(myImages)
//	dome.Run(g, dome.RunConfig{Title: "Gallery", Width: 1024, Height: 768})
//
// [Gallery] implements [ebiten.Game], so it can also be embedded in a larger
// game by forwarding Update, Draw, and Layout to it.
//
// # Components
//
// A Gallery owns one of each of the following. None of them keep package
// level state, so several galleries can run side by side.
//
//   - [BuildGrid] produces the staggered tile layout.
//   - [RotationController] turns drag displacement into a clamped, wrapped
//     [Orientation] with optional inertia.
//   - [DepthSorter] assigns each tile a draw order from its angle to the
//     viewer, coalescing recomputes to once per frame.
//   - [Transition] is the gesture arbiter: a pure function from state and
//     input to next state and [Effects].
//   - [OverlayManager] shows at most one enlarged tile at a time.
//   - [PointerTracker] publishes the ambient pointer position.
//
// # Events
//
// Register callbacks with [Gallery.OnContentOpened] and
// [Gallery.OnContentClosed], or forward every lifecycle event into an ECS
// with [Gallery.SetEventStore] and the adapter in dome/ecs.
//
// # Automation
//
// Input can be injected with [Gallery.InjectClick], [Gallery.InjectDrag],
// [Gallery.InjectTouchStart] and friends, or scripted from JSON with
// [LoadScript] and [Gallery.SetScriptRunner]. [Gallery.Screenshot] queues a
// PNG capture of the next drawn frame.
//
// [Ebitengine]: https://ebitengine.org
package dome
