// Package aevum renders a scroll-animated marketing landing page on
// [Ebitengine].
//
// The page is a retained-mode scene graph: every section, card, label and
// button is a [Node] under [Scene.Root], and the site header lives under
// [Scene.Overlay], drawn in screen space on top. The [Camera] is the
// viewport; its Bounds are the document and its vertical position is the
// scroll offset.
//
// # Quick start
//
//	aevum.Init(aevum.InitConfig{Logger: zap.Must(zap.NewProduction())})
//
//	scene := aevum.NewScene(1024, 720)
//	page := aevum.BuildPage(scene, aevum.DefaultConfig(), nil)
//
//	engine, err := aevum.NewEngine(scene)
//	if err != nil {
//		log.Fatal(err)
//	}
//	handle, _ := aevum.MountPage(engine, page)
//	defer handle.Release()
//
//	aevum.Run(scene, aevum.RunConfig{Title: "Aevum", Width: 1024, Height: 720})
//
// # Animation engine
//
// These pieces map scroll, visibility and pointer signals to node styles:
//
//   - [ProgressSource] samples the scroll offset once per frame as a value in
//     [0,1] and fans the identical sample out to every subscriber.
//   - [MapValue] maps progress through a domain [Range] onto an output
//     [Interval], clamped and eased. [Engine.BindProgress] drives node
//     properties with it.
//   - [ScrubTimeline] binds ordered steps to a trigger node's own scroll
//     span. Its position is a pure function of the scroll offset; it moves
//     between Idle, Scrubbing and Settled and re-measures when geometry
//     changes.
//   - [RevealController] plays a [Transition] from a member's initial to
//     final style once the member becomes visible, delayed by its index in
//     the group times the stagger step.
//   - [Engine.BindHover] lifts a card under the pointer once nothing else
//     drives it, and settles it back when the pointer leaves.
//
// Every registration returns a [*Subscription]. [Mount] groups
// registrations under a [MountHandle] whose Release tears them down in
// reverse order, exactly once. After Release no callback writes to a node.
//
// A node may belong to at most one scrub timeline and one reveal group at a
// time; a second registration fails with a [*ConflictError] that matches
// [ErrTargetActive] under errors.Is.
//
// # Frames
//
// [Scene.Update] reads device input and calls [Scene.Tick], which runs
// injected events, the camera, deferred frame callbacks, the progress
// sample, transitions, and visibility checks in that order. Tests drive
// Tick directly with a fixed dt; nothing depends on wall-clock time.
//
// # Configuration
//
// Motion tuning, copy, and theme come from YAML ([LoadConfig]); the defaults
// are embedded. Animation events can be forwarded to an ECS world through
// the ecs subpackage.
//
// [Ebitengine]: https://ebitengine.org
package aevum
