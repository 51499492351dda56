package web

// indexHTML is the self-contained demo page. It captures pointer events on
// the stage, lowers them onto the six-action protocol and streams them to
// /ws/touch, while /ws/view reports the camera state back.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1, user-scalable=no">
<title>go-mapview</title>
<style>
  body { margin: 0; font-family: monospace; background: #111; color: #eee; }
  #stage { position: fixed; inset: 0; touch-action: none; }
  #state { position: fixed; top: 8px; left: 8px; pointer-events: none;
           background: rgba(0,0,0,.6); padding: 8px 12px; white-space: pre; }
</style>
</head>
<body>
<div id="stage"></div>
<div id="state">connecting…</div>
<script>
(function () {
  const proto = location.protocol === "https:" ? "wss" : "ws";
  const touchWS = new WebSocket(proto + "://" + location.host + "/ws/touch");
  const viewWS = new WebSocket(proto + "://" + location.host + "/ws/view");
  const stateEl = document.getElementById("state");
  const stage = document.getElementById("stage");

  // Action codes of the native pointer protocol.
  const P1_DOWN = 0, P2_DOWN = 1, MOVE = 2, CANCEL = 3, P1_UP = 4, P2_UP = 5;
  const NONE = -1.0;

  const pointers = new Map(); // pointerId -> slot (1 or 2)

  function send(type, data) {
    if (touchWS.readyState === WebSocket.OPEN) {
      touchWS.send(JSON.stringify({ type: type, ts: Date.now(), data: data }));
    }
  }

  function sendTouch(action, x1, y1, x2, y2) {
    send("touch", { action: action, x1: x1, y1: y1, x2: x2, y2: y2 });
  }

  function positions() {
    let p1 = [NONE, NONE], p2 = [NONE, NONE];
    for (const [, p] of pointers) {
      if (p.slot === 1) p1 = [p.x, p.y];
      else p2 = [p.x, p.y];
    }
    return [p1, p2];
  }

  touchWS.onopen = function () {
    send("viewport", {
      width: stage.clientWidth,
      height: stage.clientHeight,
      scale: window.devicePixelRatio || 1,
      dpi: 96 * (window.devicePixelRatio || 1),
    });
  };

  stage.addEventListener("pointerdown", function (ev) {
    if (pointers.size >= 2) return;
    const slot = pointers.size === 0 ? 1 : 2;
    pointers.set(ev.pointerId, { slot: slot, x: ev.clientX, y: ev.clientY });
    stage.setPointerCapture(ev.pointerId);
    const [p1, p2] = positions();
    sendTouch(slot === 1 ? P1_DOWN : P2_DOWN, p1[0], p1[1], p2[0], p2[1]);
  });

  stage.addEventListener("pointermove", function (ev) {
    const p = pointers.get(ev.pointerId);
    if (!p) return;
    p.x = ev.clientX; p.y = ev.clientY;
    const [p1, p2] = positions();
    sendTouch(MOVE, p1[0], p1[1], p2[0], p2[1]);
  });

  function lift(ev) {
    const p = pointers.get(ev.pointerId);
    if (!p) return;
    const [p1, p2] = positions();
    pointers.delete(ev.pointerId);
    if (p.slot === 1) {
      // remaining pointer, if any, becomes pointer 1
      for (const [, q] of pointers) q.slot = 1;
      sendTouch(P1_UP, p1[0], p1[1], p2[0], p2[1]);
    } else {
      sendTouch(P2_UP, p1[0], p1[1], p2[0], p2[1]);
    }
  }
  stage.addEventListener("pointerup", lift);
  stage.addEventListener("pointercancel", function () {
    pointers.clear();
    sendTouch(CANCEL, NONE, NONE, NONE, NONE);
  });

  viewWS.onmessage = function (ev) {
    const msg = JSON.parse(ev.data);
    if (msg.type === "viewstate") {
      const v = msg.data;
      stateEl.textContent =
        "lng " + v.lng.toFixed(5) + "  lat " + v.lat.toFixed(5) +
        "\nzoom " + v.zoom.toFixed(3) +
        "\nyaw " + v.yaw_deg.toFixed(1) + "°  pitch " + v.pitch_deg.toFixed(1) + "°" +
        (v.flinging ? "\nflinging" : "");
    } else if (msg.type === "click") {
      stateEl.textContent += "\nclick: " + msg.data.kind;
    }
  };
})();
</script>
</body>
</html>
`
