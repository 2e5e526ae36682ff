package web

import (
	"fmt"
	"html/template"
)

// parseTemplates builds the page template set. Shared chrome (head, nav,
// footer) is defined once and referenced by each page template.
func parseTemplates() (*template.Template, error) {
	t := template.New("tressa").Funcs(template.FuncMap{
		"pagePrev": func(page int) int { return page - 1 },
		"pageNext": func(page int) int { return page + 1 },
	})
	for name, src := range map[string]string{
		"head":     headTemplate,
		"nav":      navTemplate,
		"footer":   footerTemplate,
		"home":     homeTemplate,
		"login":    loginTemplate,
		"register": registerTemplate,
		"create":   createTemplate,
		"view":     viewTemplate,
		"profile":  profileTemplate,
	} {
		if _, err := t.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
	}
	return t, nil
}

const headTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Tressa</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/katex@0.16/dist/katex.min.css">
  <script defer src="https://cdn.jsdelivr.net/npm/katex@0.16/dist/katex.min.js"></script>
  <script defer src="https://cdn.jsdelivr.net/npm/katex@0.16/dist/contrib/auto-render.min.js"></script>
  <style>
    body { font-family: system-ui, sans-serif; margin: 0; color: #212529; }
    main { max-width: 960px; margin: 0 auto; padding: 1rem; }
    nav { display: flex; gap: 1rem; align-items: center; padding: 0.75rem 1rem; border-bottom: 1px solid #dee2e6; }
    nav .spacer { flex: 1; }
    .error { background: #fff5f5; border: 1px solid #ffc9c9; color: #c92a2a; padding: 0.5rem 1rem; border-radius: 6px; margin: 1rem 0; }
    .notice { background: #ebfbee; border: 1px solid #b2f2bb; color: #2b8a3e; padding: 0.5rem 1rem; border-radius: 6px; margin: 1rem 0; }
    .code-block { position: relative; border: 1px solid #dee2e6; border-radius: 8px; margin: 1rem 0; overflow: hidden; }
    .code-lang-badge { position: absolute; top: 6px; right: 56px; font-size: 11px; color: #868e96; text-transform: uppercase; }
    .code-copy { position: absolute; top: 4px; right: 8px; font-size: 11px; }
    .code-viewport { height: 600px; overflow-y: auto; position: relative; }
    .code-spacer { position: relative; }
    .code-window { position: absolute; top: 0; left: 0; right: 0; }
    .tress-list { list-style: none; padding: 0; }
    .tress-list li { border: 1px solid #dee2e6; border-radius: 8px; padding: 0.75rem 1rem; margin-bottom: 0.5rem; }
    .tress-list .meta { color: #868e96; font-size: 0.85rem; }
    .tress-list pre { color: #495057; margin: 0.5rem 0 0; white-space: pre-wrap; }
    .pagination { display: flex; gap: 0.5rem; align-items: center; margin: 1rem 0; }
    form.stack label { display: block; margin: 0.75rem 0 0.25rem; }
    form.stack input[type=text], form.stack input[type=password], form.stack input[type=email],
    form.stack select, form.stack textarea { width: 100%; box-sizing: border-box; padding: 0.4rem; }
    textarea#content { font-family: ui-monospace, monospace; min-height: 320px; }
    .tabs button.active { font-weight: 600; text-decoration: underline; }
    #size-meter.over { color: #c92a2a; font-weight: 600; }
  </style>
</head>
<body>`

const navTemplate = `<nav>
  <a href="/"><strong>Tressa</strong></a>
  <a href="/create">New Tress</a>
  <span class="spacer"></span>
  {{if .LoggedIn}}
    <a href="/profile">{{.Username}}</a>
    <form method="post" action="/logout" style="display:inline"><button type="submit">Log out</button></form>
  {{else}}
    <a href="/login">Log in</a>
    <a href="/register">Register</a>
  {{end}}
</nav>`

const footerTemplate = `<script>
document.addEventListener('DOMContentLoaded', function () {
  if (window.renderMathInElement) {
    renderMathInElement(document.body, {delimiters: [
      {left: '$$', right: '$$', display: true},
      {left: '$', right: '$', display: false}
    ]});
  }
  document.querySelectorAll('.code-copy').forEach(function (btn) {
    btn.addEventListener('click', function () {
      var block = btn.closest('.code-block');
      navigator.clipboard.writeText(block.innerText).then(function () {
        btn.textContent = 'Copied';
        setTimeout(function () { btn.textContent = 'Copy'; }, 2000);
      });
    });
  });
  // Windowed rendering for long code blocks: fetch the visible window from
  // the fragment endpoint as the user scrolls.
  document.querySelectorAll('.code-viewport').forEach(function (vp) {
    var main = document.querySelector('main[data-tress-id]');
    if (!main) return;
    var id = main.dataset.tressId;
    var pending = null;
    vp.addEventListener('scroll', function () {
      if (pending) return;
      pending = setTimeout(function () {
        pending = null;
        var url = '/fragment/tress/' + id + '/lines?scroll_top=' + Math.floor(vp.scrollTop) +
          '&view_height=' + vp.clientHeight;
        fetch(url).then(function (r) { return r.json(); }).then(function (frag) {
          var win = vp.querySelector('.code-window');
          win.style.transform = 'translateY(' + frag.offset_y + 'px)';
          win.innerHTML = frag.html;
          vp.dataset.windowStart = frag.start;
          vp.dataset.windowEnd = frag.end;
        });
      }, 50);
    });
  });
});
</script>
</body>
</html>`

const homeTemplate = `{{template "head" .}}
{{template "nav" .Viewer}}
<main>
  <h1>Browse Tresses</h1>
  {{if .Viewer.LoggedIn}}
  <p class="tabs">
    <a href="/?list=public">Public</a> | <a href="/?list=my">Mine</a>
  </p>
  {{end}}
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
  <ul class="tress-list">
    {{range .Items}}
    <li>
      <a href="/tress/{{.ID}}"><strong>{{.Title}}</strong></a>
      <div class="meta">
        {{.Language}} ·
        {{if .OwnerUsername}}{{.OwnerUsername}}{{else}}anonymous{{end}} ·
        {{.CreatedAt}}
        {{if not .IsPublic}} · private{{end}}
      </div>
      <pre>{{.ContentPreview}}</pre>
    </li>
    {{else}}
    <li>No tresses yet.</li>
    {{end}}
  </ul>
  {{with .Pagination}}
  <div class="pagination">
    {{if .HasPrev}}<a href="/?list={{$.List}}&page={{pagePrev .Page}}">&laquo; Prev</a>{{end}}
    <span>Page {{.Page}} of {{.TotalPages}} ({{.TotalItems}} items)</span>
    {{if .HasNext}}<a href="/?list={{$.List}}&page={{pageNext .Page}}">Next &raquo;</a>{{end}}
  </div>
  {{end}}
</main>
{{template "footer" .}}`

const loginTemplate = `{{template "head" .}}
{{template "nav" .Viewer}}
<main>
  <h1>Log in</h1>
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
  {{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}
  <form class="stack" method="post" action="/login">
    <label for="username">Username</label>
    <input type="text" id="username" name="username" required>
    <label for="password">Password</label>
    <input type="password" id="password" name="password" required>
    <p><button type="submit">Log in</button></p>
  </form>
  <p>No account? <a href="/register">Register</a></p>
</main>
{{template "footer" .}}`

const registerTemplate = `{{template "head" .}}
{{template "nav" .Viewer}}
<main>
  <h1>Register</h1>
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
  <form class="stack" method="post" action="/register">
    <label for="username">Username</label>
    <input type="text" id="username" name="username" required>
    <label for="email">Email</label>
    <input type="email" id="email" name="email" required>
    <label for="password">Password</label>
    <input type="password" id="password" name="password" required>
    <p><button type="submit">Create account</button></p>
  </form>
</main>
{{template "footer" .}}`

const createTemplate = `{{template "head" .}}
{{template "nav" .Viewer}}
<main>
  <h1>Create New Tress</h1>
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
  <form class="stack" method="post" action="/create">
    <label for="title">Title</label>
    <input type="text" id="title" name="title" value="{{.Title}}" required>
    <label for="language">Language</label>
    <select id="language" name="language">
      {{range .Languages}}<option value="{{.}}" {{if eq . $.Language}}selected{{end}}>{{.}}</option>{{end}}
    </select>
    <label>
      <input type="checkbox" name="is_public" {{if .IsPublic}}checked{{end}}> Public
    </label>
    <label for="expires_in_days">Expires in days (optional{{if not .Viewer.LoggedIn}}, max 365 for anonymous{{end}})</label>
    <input type="text" id="expires_in_days" name="expires_in_days" value="{{.ExpiresIn}}">
    <p class="tabs">
      <button type="button" id="tab-edit" class="active">Edit</button>
      <button type="button" id="tab-preview">Preview</button>
      <span id="size-meter" data-cap="{{.SizeCap}}"></span>
    </p>
    <textarea id="content" name="content">{{.Content}}</textarea>
    <div id="preview-pane" hidden></div>
    <p><button type="submit" id="submit-btn">Create Tress</button></p>
  </form>
</main>
<script>
document.addEventListener('DOMContentLoaded', function () {
  var content = document.getElementById('content');
  var language = document.getElementById('language');
  var preview = document.getElementById('preview-pane');
  var meter = document.getElementById('size-meter');
  var submit = document.getElementById('submit-btn');
  var cap = parseInt(meter.dataset.cap, 10);

  var ws;
  try {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    ws = new WebSocket(proto + location.host + '/ws/preview');
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === 'preview') {
        preview.innerHTML = msg.html;
        meter.textContent = msg.size_bytes + ' / ' + msg.size_cap + ' bytes';
        meter.classList.toggle('over', msg.over_limit);
        submit.disabled = msg.over_limit;
      }
    };
  } catch (e) { /* preview degrades silently without a socket */ }

  content.addEventListener('input', function () {
    if (ws && ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify({content: content.value, language: language.value}));
    }
  });

  document.getElementById('tab-edit').addEventListener('click', function () {
    this.classList.add('active');
    document.getElementById('tab-preview').classList.remove('active');
    content.hidden = false; preview.hidden = true;
  });
  document.getElementById('tab-preview').addEventListener('click', function () {
    this.classList.add('active');
    document.getElementById('tab-edit').classList.remove('active');
    content.hidden = true; preview.hidden = false;
  });
});
</script>
{{template "footer" .}}`

const viewTemplate = `{{template "head" .}}
{{template "nav" .Viewer}}
<main {{with .Tress}}data-tress-id="{{.ID}}"{{end}}>
  {{if .Error}}
    <div class="error">{{.Error}}</div>
    {{if .Expired}}<p>This tress has expired and is no longer available.</p>{{end}}
  {{end}}
  {{with .Tress}}
  <h1>{{.Title}}</h1>
  <p class="meta">
    {{.Language}} ·
    {{if .OwnerUsername}}{{.OwnerUsername}}{{else}}anonymous{{end}} ·
    {{.CreatedAt}}
    {{if .ExpiresAt}} · expires {{.ExpiresAt}}{{end}}
    {{if not .IsPublic}} · private{{end}}
  </p>
  <p>
    <a href="{{$.RawURL}}">Raw</a>
    {{if $.CanDelete}}
    <form method="post" action="/tress/{{.ID}}/delete" style="display:inline"
      onsubmit="return confirm('Delete this tress?')">
      <button type="submit">Delete</button>
    </form>
    {{end}}
  </p>
  {{$.Rendered}}
  {{end}}
</main>
{{template "footer" .}}`

const profileTemplate = `{{template "head" .}}
{{template "nav" .Viewer}}
<main>
  <h1>Profile</h1>
  {{with .Profile}}
  <p><strong>{{.Username}}</strong> &lt;{{.Email}}&gt; (id {{.ID}})</p>
  {{end}}
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
  <h2>My Tresses</h2>
  <ul class="tress-list">
    {{range .Items}}
    <li>
      <a href="/tress/{{.ID}}"><strong>{{.Title}}</strong></a>
      <div class="meta">{{.Language}} · {{.CreatedAt}}{{if not .IsPublic}} · private{{end}}</div>
      <pre>{{.ContentPreview}}</pre>
    </li>
    {{else}}
    <li>You have no tresses yet.</li>
    {{end}}
  </ul>
  {{with .Pagination}}
  <div class="pagination">
    {{if .HasPrev}}<a href="/profile?page={{pagePrev .Page}}">&laquo; Prev</a>{{end}}
    <span>Page {{.Page}} of {{.TotalPages}}</span>
    {{if .HasNext}}<a href="/profile?page={{pageNext .Page}}">Next &raquo;</a>{{end}}
  </div>
  {{end}}
</main>
{{template "footer" .}}`
