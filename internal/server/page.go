package server

// indexHTML is the preview page: a parameter form, the rendered image, and a
// table populated from the text render. Rows break where x wraps to 0, which
// the client sees as the CRLF boundaries in the table payload.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Heightmap Preview</title>
<style>
body { font-family: sans-serif; margin: 2em; }
label { margin-right: 1em; }
input { width: 5em; }
img { image-rendering: pixelated; width: 256px; border: 1px solid #888; }
table { border-collapse: collapse; font-family: monospace; margin-top: 1em; }
td { border: 1px solid #ccc; padding: 2px 6px; text-align: right; }
</style>
</head>
<body>
<h1>Heightmap Preview</h1>
<form id="params">
<label>Width <input type="number" name="width" value="32"></label>
<label>Height <input type="number" name="height" value="24"></label>
<label>Min <input type="number" name="min_height" value="0"></label>
<label>Max <input type="number" name="max_height" value="10"></label>
<label>Octaves <input type="number" name="octaves" value="3"></label>
<label>Seed <input type="number" name="seed" placeholder="random"></label>
<label>Noise <select name="noise"><option>simplex</option><option>perlin</option></select></label>
<button type="submit">Generate</button>
</form>
<p id="status"></p>
<img id="map" alt="">
<table id="grid"></table>
<script>
const proto = location.protocol === "https:" ? "wss:" : "ws:";
const ws = new WebSocket(proto + "//" + location.host + "/ws");
const status = document.getElementById("status");

document.getElementById("params").addEventListener("submit", (e) => {
	e.preventDefault();
	const data = new FormData(e.target);
	const req = {
		width: Number(data.get("width")),
		height: Number(data.get("height")),
		min_height: Number(data.get("min_height")),
		max_height: Number(data.get("max_height")),
		octaves: Number(data.get("octaves")),
		noise: data.get("noise"),
	};
	if (data.get("seed") !== "") req.seed = Number(data.get("seed"));
	ws.send(JSON.stringify(req));
	status.textContent = "generating...";
});

ws.addEventListener("message", (e) => {
	const resp = JSON.parse(e.data);
	if (resp.error) {
		status.textContent = "error: " + resp.error;
		return;
	}
	status.textContent = "seed " + resp.seed;
	document.getElementById("map").src = resp.image_uri;
	const grid = document.getElementById("grid");
	grid.innerHTML = "";
	for (const line of resp.table.split("\r\n")) {
		const row = grid.insertRow();
		for (const cell of line.trim().split(/\s+/)) {
			row.insertCell().textContent = cell;
		}
	}
});
</script>
</body>
</html>
`
