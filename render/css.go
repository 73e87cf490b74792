package render

import (
	"fmt"
	"html/template"

	"github.com/rpupo63/site-sections-backend/section"
)

const baseCSS = `*,*::before,*::after{box-sizing:border-box}
body{margin:0;font-family:system-ui,-apple-system,"Segoe UI",Roboto,sans-serif;line-height:1.6}
img{max-width:100%;height:auto}
.section{padding:4rem 1.5rem}
.section-inner{max-width:1120px;margin:0 auto}
.section-empty{opacity:.6;text-align:center;font-style:italic}`

// sharedCSS is emitted once per page, before the first section that needs it.
var sharedCSS = map[string]string{
	"reveal": `@keyframes section-reveal{from{opacity:0;transform:translateY(16px)}to{opacity:1;transform:none}}
.reveal{animation:section-reveal .6s ease-out both}`,
	string(section.KindPricing): `.pricing-grid{display:grid;gap:1.5rem;grid-template-columns:repeat(auto-fit,minmax(240px,1fr))}
.plan{border:2px solid transparent;border-radius:12px;padding:2rem;background:rgba(255,255,255,.06);position:relative}
.plan-badge{position:absolute;top:-.75rem;right:1rem;padding:.15rem .75rem;border-radius:999px;font-size:.75rem}
.plan-price{font-size:2.5rem;font-weight:700}`,
	string(section.KindTestimonials): `.testimonial-grid{display:grid;gap:1.5rem;grid-template-columns:repeat(auto-fit,minmax(280px,1fr))}
.testimonial img{width:56px;height:56px;border-radius:50%;object-fit:cover}
.stars{letter-spacing:.1em}`,
	string(section.KindProjects): `.project-grid{display:grid;gap:2rem;grid-template-columns:repeat(auto-fit,minmax(300px,1fr))}
.status{display:inline-block;padding:.1rem .6rem;border-radius:999px;font-size:.75rem;text-transform:uppercase}
.status-completed{background:#dcfce7;color:#166534}
.status-in-progress{background:#dbeafe;color:#1e40af}
.status-on-hold{background:#fef3c7;color:#92400e}
.status-planned{background:#ede9fe;color:#5b21b6}
.status-unknown{background:#e5e7eb;color:#374151}`,
	string(section.KindTextImage): `.block{display:flex;gap:2rem;align-items:center;margin-bottom:3rem}
.block-right{flex-direction:row-reverse}
.block>*{flex:1}
@media(max-width:768px){.block,.block-right{flex-direction:column}}`,
	string(section.KindSlider): `@keyframes slider-scroll{from{transform:translateX(0)}to{transform:translateX(-100%)}}
.slider{overflow:hidden;position:relative}
.slides{display:flex;gap:1rem}
.slide{flex:0 0 100%;position:relative}
.slide figcaption{position:absolute;left:0;right:0;bottom:0;padding:1rem;background:rgba(0,0,0,.45);color:#fff}`,
	string(section.KindContent): `.columns{display:grid;gap:2.5rem}
.columns-2{grid-template-columns:1fr 1fr}
@media(max-width:768px){.columns-2{grid-template-columns:1fr}}`,
	string(section.KindFAQ): `.faq details{border-bottom:1px solid rgba(0,0,0,.1);padding:1rem 0}
.faq summary{cursor:pointer;font-weight:600}`,
}

// scopedCSS colors the accents of one section from the theme.
func scopedCSS(id string, theme Theme) template.CSS {
	return template.CSS(fmt.Sprintf(
		`#%[1]s .accent{color:%[2]s}
#%[1]s .plan-popular{border-color:%[2]s}
#%[1]s .plan-badge,#%[1]s .button{background:%[3]s;color:#fff}
#%[1]s .button{display:inline-block;padding:.6rem 1.4rem;border-radius:8px;text-decoration:none}
#%[1]s .stars{color:%[4]s}`,
		id, theme.Primary, theme.Secondary, theme.Accent,
	))
}
