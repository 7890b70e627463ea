package generator

import "fmt"

type templateKey struct {
	contentType ContentType
	tone        Tone
}

var defaultKey = templateKey{Promocional, Profesional}

// Every template takes the product name first and its description second.
var templates = map[templateKey]string{
	{Promocional, Profesional}: "✨ Descubre %s, %s. Una creación excepcional de O Boticário.",
	{Promocional, Casual}:      "¡Hola beautiful! 💕 Te presento %s - %s. ¡Estoy obsesionada!",
	{Promocional, Divertido}:   "🎉 ¡Wow! %s es INCREÍBLE. %s. ¡No puedes perdértelo!",
	{Promocional, Elegante}:    "Con el mayor placer presentamos %s. %s. Elegancia redefinida.",

	{Educativo, Profesional}: "Conoce los beneficios de %s: %s. Tu piel lo agradecerá.",
	{Educativo, Casual}:      "¿Sabías que %s puede transformar tu rutina? %s.",
	{Educativo, Divertido}:   "¡Dato curioso! %s es el secreto mejor guardado. %s.",

	{Lifestyle, Profesional}: "Integra %s en tu rutina diaria. %s.",
	{Lifestyle, Casual}:      "Mi nuevo must-have: %s. %s. ¡Game changer!",
	{Lifestyle, Divertido}:   "Plot twist: %s cambió mi vida. %s. ¡Sin mentiras!",
}

// HasTemplate reports whether the pair has its own template rather than
// falling back to promocional/profesional.
func HasTemplate(c ContentType, t Tone) bool {
	_, ok := templates[templateKey{c, t}]
	return ok
}

func baseContent(name, description string, c ContentType, t Tone) string {
	format, ok := templates[templateKey{c, t}]
	if !ok {
		format = templates[defaultKey]
	}
	return fmt.Sprintf(format, name, description)
}

// expansions builds a fresh ordered pool for one call.
func expansions(category string) []string {
	return []string{
		"Su fórmula única combina ingredientes naturales de la más alta calidad.",
		fmt.Sprintf("Desarrollado por expertos en %s para resultados excepcionales.", category),
		"Miles de clientes ya han experimentado los beneficios transformadores.",
		"La textura sedosa y el aroma cautivante hacen de cada aplicación un momento especial.",
		"Ideal para todo tipo de piel, respetando tu sensibilidad natural.",
		"Disponible en todas nuestras tiendas físicas y plataforma online.",
		"Forma parte de la rutina de belleza de celebrities reconocidas.",
		"Su tecnología innovadora garantiza resultados visibles desde la primera semana.",
		"Testado dermatológicamente para asegurar la máxima seguridad.",
		"Con certificación cruelty-free y ingredientes sostenibles.",
	}
}
