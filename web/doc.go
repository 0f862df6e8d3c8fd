// Package web hosts an easel in a browser page when compiled with
// GOOS=js GOARCH=wasm.
//
// Frames are scheduled with requestAnimationFrame, time comes from
// performance.now and the surface is a <canvas> with an opaque 2-D context.
// The host builds this DOM under the parent element:
//
//	<div class="easel">
//	  <canvas></canvas>
//	  <div class="easel-controls"><button class="easel-pause"></button></div>
//	  <div class="easel-status">caption, fps</div>
//	</div>
package web
