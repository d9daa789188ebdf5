package template

// StyleCSS is shared by the EPUB chapters and the browsable web pages.
const StyleCSS = `
body > div {
  margin: 0 auto;
  max-width: 48em;
  padding: 20px;
  box-sizing: border-box;
  line-height: 1.6;
  text-align: justify;
  color: #333333;
}

h1 {
  text-align: center;
  font-size: 1.5em;
  margin: 2em auto;
  font-weight: bold;
  color: #2c3e50;
}

p {
  text-indent: 2em;
  margin: 0.8em 0;
}

img {
  max-width: 80%;
  height: auto;
  display: block;
  margin: 1em auto;
}

nav.chapter-nav {
  display: flex;
  justify-content: space-between;
  margin: 1.5em 0;
  text-indent: 0;
}

nav.chapter-nav a {
  color: #2c3e50;
  text-decoration: none;
}
`
